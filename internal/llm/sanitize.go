package llm

import "strings"

// StripCodeFence unwraps a Markdown code fence around a JSON reply. Models
// frequently return ```json ... ``` even when told not to; the payload is the
// slice between the first '{' and the last '}'. Replies without a fence are
// returned trimmed and otherwise untouched.
func StripCodeFence(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	open := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if open == -1 || end < open {
		return s
	}
	return s[open : end+1]
}
