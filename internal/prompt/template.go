package prompt

import (
	"fmt"
	"strings"
)

// Render fills the fixed instruction template. The wording is load-bearing:
// the output schema it dictates is what the normalizer parses, and the 75%
// confidence rule plus the target exception are what the resolver enforces
// downstream. Edit with care.
func Render(evidence, target, planJSON, contextText, webText string) string {
	var sb strings.Builder

	sb.WriteString(`**System Instruction / Prompt**
**Role**: You are an expert professional-development documentation assistant. Your goal is to document a trainee's professional competencies for formal assessment against their training plan.

**Input**: You will receive a Summary of Activities for a specific month.
**Input Data**:
`)
	sb.WriteString(fmt.Sprintf("- Activity: %q\n", evidence))
	if target != "" {
		sb.WriteString(fmt.Sprintf("- Targeted Competency: %q\n", target))
	}

	sb.WriteString("\n**Reference Data (Training Plan)**:\n")
	sb.WriteString(planJSON)
	sb.WriteString("\n\n**Reference Context**:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n")
	sb.WriteString(webText)

	sb.WriteString(`
**Goal**: Identify **ALL** relevant competencies from the Training Plan that this activity provides evidence for (with >75% confidence).

**Output Requirement**: For **EACH** identified competency, generate a single, cohesive, professional paragraph narrative.

**Structure of the Narrative**: For each mapping, weave the following four dimensions into a smooth flow:

1. **Context (Task Understanding)**: Start by establishing When and Where the task took place, immediately linking it to the primary Action taken.
2. **Action & Outcome (Task Understanding)**: Describe What steps were taken and How they were performed. Crucially, you must explicitly link these actions to the Competency being documented to explain Why it was done (the desired learning outcome). Mention Who else was involved if relevant for corroboration.
3. **Complexity (Task Completion)**: Towards the end of the paragraph, explicitly describe the Technical Complexity. Was it a predetermined step, or did it require integrating knowledge sources and skills?
4. **Autonomy (Guidance & Dependencies)**: Conclude by stating the level of Guidance received (e.g., limited guidance, under supervision) and the level of Responsibility taken.

**Negative Constraints (What NOT to do)**:
- Never output the response as a list of answers to questions.
- Never use phrases like "The correct manner is..." or "What happened was..."
- Do not separate the "Complexity" section into a new paragraph; keep it within the single block of text.
- **CRITICAL**: Do NOT output text in brackets like "[Who]" or "[Client Name]". If a specific name is unknown, use general terms like "the client team" or "management" instead of leaving a placeholder.

**Instructions**:
1. Scan the Training Plan for **ALL** potential matches.
2. Filter: Only keep if >75% CONFIDENT.
`)
	if target != "" {
		sb.WriteString(fmt.Sprintf("   - EXCEPTION: If TARGET %q is requested, include it (mark confidence even if low).\n", target))
	}
	sb.WriteString(`3. Output a **LIST** of mappings in the specified JSON format.

**JSON Format**:
{ "mappings": [
    { "competency_code": "...", "name": "...", "confidence": 0.95, "reasoning": "Narrative paragraph here..." },
    { "competency_code": "...", "name": "...", "confidence": 0.85, "reasoning": "Narrative paragraph here..." }
] }
`)
	return sb.String()
}
