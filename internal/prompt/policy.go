// Package prompt builds the provider-specific mapping prompt: the serialized
// training plan, supporting context, and the fixed instruction template.
// Size budgeting is a property of the target provider, expressed as a
// SizePolicy so the assembler itself stays provider-agnostic.
package prompt

// SizePolicy bounds what the assembler may put into a prompt. Zero limits
// mean unlimited.
type SizePolicy struct {
	// FullTaxonomy includes every field of every plan record verbatim.
	// When false the plan is projected down to code, name and a
	// DescriptionChars-capped description.
	FullTaxonomy bool

	// DescriptionChars caps each record's description in the minified
	// projection.
	DescriptionChars int

	// ContextChars caps the total supporting-context text.
	ContextChars int

	// DocumentChars caps each individual context document.
	DocumentChars int

	// WebChars caps each web-derived text.
	WebChars int
}

// GeminiPolicy is the high-capacity policy: everything goes in verbatim.
var GeminiPolicy = SizePolicy{
	FullTaxonomy: true,
}

// GroqPolicy fits the prompt under Groq's token-per-minute quota: minified
// plan, 15k chars of context in 3k snippets, 500-char web prefixes.
var GroqPolicy = SizePolicy{
	FullTaxonomy:     false,
	DescriptionChars: 200,
	ContextChars:     15000,
	DocumentChars:    3000,
	WebChars:         500,
}

// PolicyFor returns the size policy for a provider id. Unknown ids get the
// high-capacity policy, matching the provider factory's default.
func PolicyFor(providerID string) SizePolicy {
	if providerID == "groq" {
		return GroqPolicy
	}
	return GeminiPolicy
}

// truncate caps s at n characters (code points, not bytes). n <= 0 means
// no cap.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
