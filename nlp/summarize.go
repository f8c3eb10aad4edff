package nlp

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxSentences is the number of key points kept per page.
	DefaultMaxSentences = 6

	// maxScoredSentences bounds the work done on very long texts.
	maxScoredSentences = 250

	// summarySentences is the number of key points joined into the summary.
	summarySentences = 3

	// idealSentenceLength is the sentence length, in characters, that earns
	// the full length bonus.
	idealSentenceLength = 180
)

// SplitSentences splits text after '.', '!' or '?' when followed by
// whitespace. Empty pieces are dropped.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if (r == '.' || r == '!' || r == '?') && i+size < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if unicode.IsSpace(next) {
				if s := strings.TrimSpace(text[start : i+size]); s != "" {
					out = append(out, s)
				}
				j := i + size
				for j < len(text) {
					r, n := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(r) {
						break
					}
					j += n
				}
				start, i = j, j
				continue
			}
		}
		i += size
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

type scoredSentence struct {
	index int
	score float64
	text  string
}

// Summarize selects up to maxSentences key points from text and joins the
// first three of them into a summary. A sentence scores 2 for each distinct
// keyword it contains, ignoring case, plus a bonus of up to 1 for lengths
// near 180 characters. Key points keep their original order.
func Summarize(text string, keywords []string, maxSentences int) (string, []string) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return "", []string{}
	}
	if len(sentences) > maxScoredSentences {
		sentences = sentences[:maxScoredSentences]
	}

	keyset := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(k); k != "" {
			keyset[k] = true
		}
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		lower := strings.ToLower(s)
		score := 0.0
		for k := range keyset {
			if strings.Contains(lower, k) {
				score += 2
			}
		}
		diff := math.Abs(float64(utf8.RuneCountInString(s)) - idealSentenceLength)
		score += math.Max(0, 200-diff) / 200
		scored[i] = scoredSentence{index: i, score: score, text: s}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if maxSentences >= 0 && len(scored) > maxSentences {
		scored = scored[:maxSentences]
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].index < scored[j].index
	})

	points := make([]string, len(scored))
	for i, s := range scored {
		points[i] = s.text
	}

	n := min(summarySentences, len(points))
	return strings.TrimSpace(strings.Join(points[:n], " ")), points
}
