package content

import "strings"

// stripFences removes a surrounding markdown code fence, optionally tagged
// "json", from a raw model response. The model is instructed to return pure
// JSON but may still wrap it in markdown formatting; both forms must parse
// identically.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
