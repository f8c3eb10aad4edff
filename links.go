package pagedigest

// DedupeLinks keeps the first limit links and removes duplicates from them,
// preserving first-seen order. A non-positive limit keeps every link.
func DedupeLinks(links []string, limit int) []string {
	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
