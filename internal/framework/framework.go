// Package framework holds the competency framework data consumed by the
// mapper: the ordered training plan, scraped web content, and supporting
// context documents. A Framework is assembled once per run and treated as
// read-only afterwards, so concurrent mapping requests can share it.
package framework

import "strings"

// CompetencyRecord is one entry of the training plan. The sequence index is
// assigned at load time from the source ordering and never recomputed; the
// mapper uses it as the canonical display order.
type CompetencyRecord struct {
	Code        string         `json:"competency_code" yaml:"competency_code"`
	Name        string         `json:"competency_name" yaml:"competency_name"`
	Description string         `json:"behavioral_indicators" yaml:"behavioral_indicators"`
	Extra       map[string]any `json:"original_row,omitempty" yaml:"original_row,omitempty"`

	seq int
}

// SequenceIndex returns the record's position in the source ordering.
func (r CompetencyRecord) SequenceIndex() int { return r.seq }

// Framework is the per-request snapshot handed to the mapper.
type Framework struct {
	// Plan is the ordered training plan.
	Plan []CompetencyRecord
	// WebContent maps source URL to extracted page text.
	WebContent map[string]string
	// AdditionalContext maps category name to document name to content.
	AdditionalContext map[string]map[string]string
}

// NewPlan stamps sequence indices onto records in their given order.
func NewPlan(records []CompetencyRecord) []CompetencyRecord {
	out := make([]CompetencyRecord, len(records))
	for i, r := range records {
		r.seq = i
		out[i] = r
	}
	return out
}

// Lookup returns the record whose code matches (trimmed, case-insensitive),
// or false when no record matches.
func Lookup(plan []CompetencyRecord, code string) (CompetencyRecord, bool) {
	key := strings.ToLower(strings.TrimSpace(code))
	for _, r := range plan {
		if strings.ToLower(strings.TrimSpace(r.Code)) == key {
			return r, true
		}
	}
	return CompetencyRecord{}, false
}
