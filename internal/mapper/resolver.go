package mapper

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"scribe/internal/framework"
)

var tokenSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Resolve applies the keep policy, overrides model-asserted names with the
// authoritative plan record, and orders the survivors by the plan's own
// sequence.
//
// An empty candidate list is indistinguishable from upstream failure and
// returns the fallback sentinel. A list that filters down to nothing is a
// legitimate "nothing qualified" answer and returns an empty slice; the two
// cases must not be conflated.
func Resolve(candidates []Candidate, plan []framework.CompetencyRecord, target, originalInput string) []Result {
	if len(candidates) == 0 {
		return Fallback(originalInput, nil)
	}

	type scored struct {
		result Result
		seq    int
	}
	var kept []scored

	for _, c := range candidates {
		conf := c.Confidence
		if conf <= 1.0 {
			conf *= 100
		}

		keep := false
		weak := false
		if target != "" {
			// Exclusive mode: only the targeted competency survives,
			// at any confidence.
			if matchesTarget(target, c.Name, c.Code) {
				keep = true
				weak = conf < 75
			}
		} else {
			keep = conf >= 75
		}
		if !keep {
			continue
		}

		r := Result{
			CompetencyCode: c.Code,
			Name:           c.Name,
			Confidence:     conf,
			Reasoning:      c.Reasoning,
			IsWeakTarget:   weak,
		}

		seq := math.MaxInt
		if rec, ok := framework.Lookup(plan, c.Code); ok {
			// Authority override: the plan's name and description win
			// over whatever the model asserted.
			r.Name = rec.Name
			r.Desc = rec.Description
			seq = rec.SequenceIndex()
		}
		kept = append(kept, scored{result: r, seq: seq})
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].seq < kept[j].seq })

	out := make([]Result, len(kept))
	for i, s := range kept {
		out[i] = s.result
	}
	return out
}

// matchesTarget reports whether any target token of length >= 2 appears as
// a substring of the candidate's name + code. Deliberately permissive:
// short tokens can match inside unrelated words, and that coarseness is
// part of the contract, not a bug to fix.
func matchesTarget(target, name, code string) bool {
	haystack := strings.ToLower(name + code)
	for _, tok := range tokenSplit.Split(strings.ToLower(target), -1) {
		if len(tok) < 2 {
			continue
		}
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}
