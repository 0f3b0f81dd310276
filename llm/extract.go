package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSON pulls the JSON object a provider embedded in surrounding
// prose (markdown fences, commentary). It takes the span from the
// first '{' to the last '}' and reports whether a span was found at
// all. The result is best-effort and must be validated before use.
func ExtractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// HasKeys reports whether the candidate span parses as JSON and
// contains every required top-level key. A failed check triggers the
// same tier fallthrough as a network error.
func HasKeys(jsonStr string, keys ...string) bool {
	if !gjson.Valid(jsonStr) {
		return false
	}
	for _, key := range keys {
		if !gjson.Get(jsonStr, key).Exists() {
			return false
		}
	}
	return true
}
