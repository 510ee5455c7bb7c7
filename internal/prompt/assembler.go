package prompt

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"scribe/internal/framework"
)

// Assemble renders the full mapping prompt for one request under the given
// size policy.
func Assemble(fw *framework.Framework, evidence, target string, policy SizePolicy) (string, error) {
	planJSON, err := serializePlan(fw.Plan, policy)
	if err != nil {
		return "", fmt.Errorf("failed to serialize training plan: %w", err)
	}
	contextText := assembleContext(fw.AdditionalContext, policy)
	webText := assembleWeb(fw.WebContent, policy)
	return Render(evidence, target, planJSON, contextText, webText), nil
}

// fullRecord is the verbatim serialization shape of a plan record.
type fullRecord struct {
	Code        string         `json:"competency_code"`
	Name        string         `json:"competency_name"`
	Description string         `json:"behavioral_indicators"`
	Extra       map[string]any `json:"original_row,omitempty"`
}

// miniRecord is the budget projection of a plan record.
type miniRecord struct {
	Code string `json:"competency_code"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

func serializePlan(plan []framework.CompetencyRecord, policy SizePolicy) (string, error) {
	if policy.FullTaxonomy {
		records := make([]fullRecord, len(plan))
		for i, r := range plan {
			extra, _ := sanitizeNonFinite(r.Extra).(map[string]any)
			records[i] = fullRecord{
				Code:        r.Code,
				Name:        r.Name,
				Description: r.Description,
				Extra:       extra,
			}
		}
		data, err := json.MarshalIndent(records, "", "")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	records := make([]miniRecord, len(plan))
	for i, r := range plan {
		records[i] = miniRecord{
			Code: r.Code,
			Name: r.Name,
			Desc: truncate(r.Description, policy.DescriptionChars),
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sanitizeNonFinite replaces NaN and infinite floats with empty strings so
// the payload stays valid JSON (encoding/json rejects non-finite values).
func sanitizeNonFinite(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		return val
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = sanitizeNonFinite(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitizeNonFinite(item)
		}
		return out
	default:
		return v
	}
}

// assembleContext flattens the category -> document -> text mapping into a
// single block. Categories and documents are consumed in sorted order so
// the budget cuts deterministically.
func assembleContext(ctx map[string]map[string]string, policy SizePolicy) string {
	var sb strings.Builder
	budget := policy.ContextChars
	used := 0

	for _, category := range sortedKeys(ctx) {
		if budget > 0 && used >= budget {
			break
		}
		sb.WriteString(fmt.Sprintf("=== Category: %s ===\n", category))
		for _, name := range sortedKeys(ctx[category]) {
			if budget > 0 && used >= budget {
				break
			}
			snippet := truncate(ctx[category][name], policy.DocumentChars)
			sb.WriteString(fmt.Sprintf("--- Document: %s ---\n%s\n\n", name, snippet))
			// Count characters, not bytes: truncate caps by rune, and the
			// budget must use the same unit.
			used += utf8.RuneCountInString(snippet)
		}
	}
	return sb.String()
}

// assembleWeb flattens url -> text. The full policy keeps source
// attribution; the budget policy keeps only a short prefix per page.
func assembleWeb(web map[string]string, policy SizePolicy) string {
	var sb strings.Builder
	for _, url := range sortedKeys(web) {
		if policy.WebChars > 0 {
			sb.WriteString(truncate(web[url], policy.WebChars))
			sb.WriteString("\n")
		} else {
			sb.WriteString(fmt.Sprintf("Source: %s\n%s\n\n", url, web[url]))
		}
	}
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
