package prompt

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"scribe/internal/framework"
)

func planFixture() []framework.CompetencyRecord {
	return framework.NewPlan([]framework.CompetencyRecord{
		{Code: "1a", Name: "Ethics", Description: strings.Repeat("x", 300)},
		{Code: "1b", Name: "Risk", Description: "short"},
	})
}

func TestSerializePlan_FullIncludesEverything(t *testing.T) {
	got, err := serializePlan(planFixture(), GeminiPolicy)
	if err != nil {
		t.Fatalf("serializePlan failed: %v", err)
	}
	if !strings.Contains(got, "behavioral_indicators") {
		t.Error("Full serialization must keep the original field names")
	}
	if !strings.Contains(got, strings.Repeat("x", 300)) {
		t.Error("Full serialization must not truncate descriptions")
	}
}

func TestSerializePlan_FullSanitizesNonFinite(t *testing.T) {
	plan := framework.NewPlan([]framework.CompetencyRecord{
		{Code: "1a", Name: "Ethics", Extra: map[string]any{
			"hours": math.NaN(),
			"rate":  math.Inf(1),
			"note":  "kept",
		}},
	})
	got, err := serializePlan(plan, GeminiPolicy)
	if err != nil {
		t.Fatalf("Non-finite values must not break serialization: %v", err)
	}
	var parsed []map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	row := parsed[0]["original_row"].(map[string]any)
	if row["hours"] != "" || row["rate"] != "" {
		t.Errorf("Non-finite values must become empty strings, got %+v", row)
	}
	if row["note"] != "kept" {
		t.Errorf("Finite values must survive, got %+v", row)
	}
}

func TestSerializePlan_MinifiedProjection(t *testing.T) {
	got, err := serializePlan(planFixture(), GroqPolicy)
	if err != nil {
		t.Fatalf("serializePlan failed: %v", err)
	}
	var parsed []map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("Minified payload is not valid JSON: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(parsed))
	}
	first := parsed[0]
	if first["competency_code"] != "1a" || first["name"] != "Ethics" {
		t.Errorf("Unexpected projection: %+v", first)
	}
	if desc := first["desc"].(string); len(desc) != 200 {
		t.Errorf("Description must be capped at 200 chars, got %d", len(desc))
	}
	if _, present := first["behavioral_indicators"]; present {
		t.Error("Minified projection must not carry the full field")
	}
}

func TestAssembleContext_Budget(t *testing.T) {
	ctx := map[string]map[string]string{
		"guidelines": {
			"a.txt": strings.Repeat("a", 5000),
			"b.txt": strings.Repeat("b", 5000),
		},
	}
	policy := SizePolicy{ContextChars: 4000, DocumentChars: 3000}
	got := assembleContext(ctx, policy)

	if !strings.Contains(got, "=== Category: guidelines ===") {
		t.Error("Category header missing")
	}
	if !strings.Contains(got, strings.Repeat("a", 3000)) {
		t.Error("First document should be truncated to the per-document cap")
	}
	if strings.Contains(got, strings.Repeat("a", 3001)) {
		t.Error("Per-document cap exceeded")
	}
	// After the first 3000-char snippet, 1000 chars of budget remain, so
	// the second document is still consumed (capped), then the budget is
	// exhausted.
	if !strings.Contains(got, "b.txt") {
		t.Error("Budget should admit the second document")
	}
}

func TestAssembleContext_BudgetCountsRunes(t *testing.T) {
	// Two documents of 3000 characters each, in 2-byte runes. Counting
	// bytes would charge 6000 against the budget after the first snippet
	// and starve the second document; counting characters must admit it.
	ctx := map[string]map[string]string{
		"guidelines": {
			"a.txt": strings.Repeat("é", 3000),
			"b.txt": strings.Repeat("ü", 3000),
		},
	}
	policy := SizePolicy{ContextChars: 4000, DocumentChars: 3000}
	got := assembleContext(ctx, policy)

	if !strings.Contains(got, strings.Repeat("é", 3000)) {
		t.Error("First document missing")
	}
	if !strings.Contains(got, "b.txt") {
		t.Error("Budget must be charged in characters, not bytes: second document should be admitted")
	}
}

func TestAssembleContext_Unlimited(t *testing.T) {
	ctx := map[string]map[string]string{
		"cat": {"doc.md": strings.Repeat("z", 20000)},
	}
	got := assembleContext(ctx, GeminiPolicy)
	if !strings.Contains(got, strings.Repeat("z", 20000)) {
		t.Error("High-capacity policy must not truncate documents")
	}
}

func TestAssembleWeb(t *testing.T) {
	web := map[string]string{"https://example.org/framework": strings.Repeat("w", 1000)}

	full := assembleWeb(web, GeminiPolicy)
	if !strings.Contains(full, "Source: https://example.org/framework") {
		t.Error("Full policy must keep source attribution")
	}
	if !strings.Contains(full, strings.Repeat("w", 1000)) {
		t.Error("Full policy must not truncate page text")
	}

	capped := assembleWeb(web, GroqPolicy)
	if strings.Contains(capped, strings.Repeat("w", 501)) {
		t.Error("Budget policy must cap web text at 500 chars")
	}
	if strings.Contains(capped, "Source:") {
		t.Error("Budget policy drops source attribution")
	}
}

func TestRender_Template(t *testing.T) {
	got := Render("counted inventory", "", "[]", "", "")
	for _, want := range []string{
		`"mappings"`,
		">75% confidence",
		"competency_code",
		"reasoning",
		`Activity: "counted inventory"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Template missing %q", want)
		}
	}
	if strings.Contains(got, "Targeted Competency") {
		t.Error("Target line must be absent without a target")
	}

	withTarget := Render("evidence", "1a", "[]", "", "")
	if !strings.Contains(withTarget, `Targeted Competency: "1a"`) {
		t.Error("Target line missing")
	}
	if !strings.Contains(withTarget, "EXCEPTION") {
		t.Error("Target exception instruction missing")
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	fw := &framework.Framework{
		Plan:              planFixture(),
		WebContent:        map[string]string{"https://x": "page text"},
		AdditionalContext: map[string]map[string]string{"cat": {"d.txt": "doc text"}},
	}
	got, err := Assemble(fw, "evidence text", "", PolicyFor("groq"))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for _, want := range []string{"evidence text", "competency_code", "doc text", "page text"} {
		if !strings.Contains(got, want) {
			t.Errorf("Assembled prompt missing %q", want)
		}
	}
}
