package mapper

import "testing"

func TestSplitInput_Directive(t *testing.T) {
	target, evidence := SplitInput("COMPETENCY: 1a Ethics EVIDENCE: Reviewed the inventory count")
	if target != "1a Ethics" {
		t.Errorf("Expected target '1a Ethics', got %q", target)
	}
	if evidence != "Reviewed the inventory count" {
		t.Errorf("Expected evidence, got %q", evidence)
	}
}

func TestSplitInput_NoDirective(t *testing.T) {
	raw := "Performed stock counts at the client warehouse"
	target, evidence := SplitInput(raw)
	if target != "" {
		t.Errorf("Expected no target, got %q", target)
	}
	if evidence != raw {
		t.Errorf("Expected original string back, got %q", evidence)
	}
}

func TestSplitInput_MalformedFailsSilently(t *testing.T) {
	cases := []string{
		"COMPETENCY: EVIDENCE: something",        // empty target
		"COMPETENCY: 1a EVIDENCE:",               // empty evidence
		"COMPETENCY: 1a only",                    // missing evidence marker
		"EVIDENCE: something only",               // missing competency marker
		"EVIDENCE: something COMPETENCY: 1a",     // markers reversed
		"COMPETENCY:EVIDENCE:",                   // both empty
	}
	for _, raw := range cases {
		target, evidence := SplitInput(raw)
		if target != "" {
			t.Errorf("Input %q: expected no target, got %q", raw, target)
		}
		if evidence != raw {
			t.Errorf("Input %q: expected original string back, got %q", raw, evidence)
		}
	}
}
