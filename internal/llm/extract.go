package llm

import "strings"

// extractJSON salvages the JSON document from a model response that may be
// wrapped in markdown fences or surrounded by commentary. It returns the
// slice between the first opening brace/bracket and its matching closer;
// if none is found the input comes back unchanged and the JSON decoder
// reports the failure.
func extractJSON(resp string) string {
	s := strings.TrimSpace(resp)

	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start, closer := objStart, byte('}')
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start, closer = arrStart, ']'
	}
	if start < 0 {
		return s
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
