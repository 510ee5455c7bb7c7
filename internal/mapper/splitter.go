package mapper

import "strings"

// Directive markers for targeting a single competency.
const (
	markerCompetency = "COMPETENCY:"
	markerEvidence   = "EVIDENCE:"
)

// SplitInput detects an explicit-target directive of the shape
// "COMPETENCY: <target> EVIDENCE: <evidence>". When both sides are present
// and non-empty it returns (target, evidence); any malformed variant fails
// silently and the whole input is treated as evidence with no target.
func SplitInput(raw string) (target, evidence string) {
	if !strings.Contains(raw, markerCompetency) || !strings.Contains(raw, markerEvidence) {
		return "", raw
	}

	parts := strings.SplitN(raw, markerEvidence, 2)
	head, tail := parts[0], parts[1]

	idx := strings.Index(head, markerCompetency)
	if idx < 0 {
		return "", raw
	}

	target = strings.TrimSpace(head[idx+len(markerCompetency):])
	evidence = strings.TrimSpace(tail)
	if target == "" || evidence == "" {
		return "", raw
	}
	return target, evidence
}
