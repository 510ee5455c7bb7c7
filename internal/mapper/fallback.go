package mapper

import "fmt"

// Fallback produces the single synthetic error sentinel returned whenever
// the pipeline cannot produce a real answer: missing credential, provider
// failure, or nothing parseable in the response. It never fails itself.
func Fallback(originalInput string, err error) []Result {
	reasoning := fmt.Sprintf("Mapping failed. Input: %s", originalInput)
	if err != nil {
		reasoning = fmt.Sprintf("Mapping failed. Error: %v. Input: %s", err, originalInput)
	}
	return []Result{{
		CompetencyCode: "ERR",
		Name:           "Error",
		Confidence:     0,
		Reasoning:      reasoning,
	}}
}
