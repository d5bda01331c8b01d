package agent

import (
	"encoding/json"
	"strings"
)

// The reasoning service is not guaranteed to hand back a plain string:
// some models emit a JSON fragment list or a keyed object instead. The
// normalization rule is fixed: fragment list -> concatenated text,
// keyed object -> first of output/text/content, anything else -> the
// raw string.
func normalizeAnswer(content string) string {
	trimmed := strings.TrimSpace(content)

	if txt, ok := fragmentsText(trimmed); ok {
		return txt
	}
	if txt, ok := keyedText(trimmed); ok {
		return txt
	}
	return trimmed
}

type fragment struct {
	Text string `json:"text"`
}

func fragmentsText(s string) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", false
	}
	var frags []fragment
	if err := json.Unmarshal([]byte(s), &frags); err != nil {
		return "", false
	}
	var parts []string
	for _, f := range frags {
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func keyedText(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return "", false
	}
	for _, key := range []string{"output", "text", "content"} {
		if v, ok := obj[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
