// Package mapper implements the competency-mapping pipeline: split the
// trainee input, assemble a provider-sized prompt, invoke the provider,
// normalize its JSON, then filter and re-label candidates against the
// authoritative training plan. The Map operation never returns an error;
// every failure degrades to the single fallback sentinel so callers always
// render data.
package mapper

// Candidate is one competency suggestion from the provider, after key
// healing but before filtering. Confidence is still in whatever scale the
// model used.
type Candidate struct {
	Code       string
	Name       string
	Confidence float64
	Reasoning  string
}

// Result is one entry of the final mapping list handed to the report
// renderer. Confidence is on the 0-100 scale.
type Result struct {
	CompetencyCode string  `json:"competency_code"`
	Name           string  `json:"name"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
	Desc           string  `json:"desc,omitempty"`
	IsWeakTarget   bool    `json:"is_weak_target,omitempty"`
}
