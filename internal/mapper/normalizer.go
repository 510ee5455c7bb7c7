package mapper

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Normalize parses the provider's raw text into candidates. A surrounding
// fenced code block is stripped first; a parse failure is recoverable and
// yields an empty list, never an error. Candidate maps are key-healed
// before being typed, so models that answer with "code" instead of
// "competency_code" (or "competency_name" instead of "name") still parse.
func Normalize(raw string, logger *zap.Logger) []Candidate {
	if logger == nil {
		logger = zap.NewNop()
	}

	text := stripFence(raw)

	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		logger.Error("JSON parsing failed", zap.Error(err), zap.String("raw", truncateForLog(text)))
		return nil
	}

	var rawList []any
	switch v := data.(type) {
	case map[string]any:
		if mappings, ok := v["mappings"].([]any); ok {
			rawList = mappings
		} else if _, ok := v["competency_code"]; ok {
			rawList = []any{v}
		} else if _, ok := v["code"]; ok {
			rawList = []any{v}
		}
	case []any:
		rawList = v
	}

	var out []Candidate
	for _, item := range rawList {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, toCandidate(healKeys(m)))
	}
	return out
}

// stripFence removes a surrounding markdown code fence, with an optional
// language tag, from the model's response.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	text = parts[1]
	text = strings.TrimPrefix(text, "json")
	return strings.TrimSpace(text)
}

// healKeys copies the two documented alias keys onto their canonical names.
// It is a pure function: the input map is not modified.
func healKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	if code, ok := out["code"]; ok {
		if _, present := out["competency_code"]; !present {
			out["competency_code"] = code
		}
	}
	if name, ok := out["competency_name"]; ok {
		if _, present := out["name"]; !present {
			out["name"] = name
		}
	}
	return out
}

func toCandidate(m map[string]any) Candidate {
	c := Candidate{}
	if s, ok := m["competency_code"].(string); ok {
		c.Code = s
	}
	if s, ok := m["name"].(string); ok {
		c.Name = s
	}
	if f, ok := m["confidence"].(float64); ok {
		c.Confidence = f
	}
	if s, ok := m["reasoning"].(string); ok {
		c.Reasoning = s
	}
	return c
}

func truncateForLog(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}
