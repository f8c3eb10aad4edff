// Package clean normalizes text extracted from web pages: whitespace
// collapsing, charset decoding of fetched bodies and best-effort repair of
// text that was decoded with the wrong code page upstream.
package clean

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Normalize repairs mojibake and collapses all Unicode whitespace,
// including non-breaking spaces, to single ASCII spaces.
// Normalize is idempotent and never panics.
func Normalize(s string) string {
	return Whitespace(FixMojibake(s))
}

// Whitespace collapses runs of Unicode whitespace to a single space and
// trims both ends.
func Whitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FixMojibake repairs text that was decoded as Windows-1252 although it was
// UTF-8. It only acts when s contains the replacement character (or invalid
// UTF-8): the text is re-encoded to Windows-1252, dropping runes that have no
// encoding, and decoded again as UTF-8, dropping invalid bytes.
// Any failure returns s unchanged.
func FixMojibake(s string) (out string) {
	if !strings.ContainsRune(s, utf8.RuneError) {
		return s
	}
	defer func() {
		if r := recover(); r != nil {
			out = s
		}
	}()

	raw := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			raw = append(raw, b)
		}
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		if r == utf8.RuneError {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Decode converts a fetched body to UTF-8. The encoding is taken from the
// Content-Type header, a byte order mark or an HTML meta declaration, in
// that order; UTF-8 is assumed when none is present.
func Decode(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
