package nlp

import "strings"

// stopwords are excluded from frequency keywords.
var stopwords = func() map[string]bool {
	words := strings.Fields(`
		the a an and or but if then else for to of in on at by from with
		without this that these those is are was were be been being as it its
		into can may must should will would could about over under than also
		such more most less very not no yes you your we our they their i me my
		them us`)
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// IsStopword reports whether w is in the fixed English stop-word set.
// w must be lowercase.
func IsStopword(w string) bool {
	return stopwords[w]
}
