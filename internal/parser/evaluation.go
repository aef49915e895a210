package parser

import (
	"encoding/json"
	"strings"
)

// ParseEvaluation extracts the rubric record from a model reply. It looks for
// a fenced JSON block first and falls back to treating the whole text as
// JSON. Any parse failure yields the fixed default record; the function never
// returns an error.
func ParseEvaluation(raw string) EvaluationRecord {
	candidate := extractFencedCode(raw)
	if candidate == "" {
		candidate = raw
	}

	// Trim to the outermost braces; models like to wrap JSON in prose.
	if idx := strings.Index(candidate, "{"); idx >= 0 {
		candidate = candidate[idx:]
	}
	if idx := strings.LastIndex(candidate, "}"); idx >= 0 {
		candidate = candidate[:idx+1]
	}

	var rec EvaluationRecord
	if err := json.Unmarshal([]byte(candidate), &rec); err != nil {
		return defaultEvaluation(raw)
	}

	if rec.Suggestions == nil {
		rec.Suggestions = []string{}
	}
	return rec
}
