// Package feasibility decides whether a request is answerable by the target
// geospatial platform, from fixed keyword tables and a static reference set.
package feasibility

import (
	"fmt"
	"strings"
)

// Verdict is the assessor's decision for one request.
type Verdict struct {
	Feasible            bool
	Explanation         string
	SuggestedReferences []string
}

// Assessor is a pure keyword/reference policy. The zero value is not usable;
// construct with New.
type Assessor struct {
	positive []PolicyTerm
	negative []PolicyTerm
	refs     []Reference
}

func New() *Assessor {
	return &Assessor{
		positive: positiveTerms,
		negative: negativeTerms,
		refs:     references,
	}
}

// Assess applies the decision table: any negative term makes the request
// infeasible; a positive term or at least two matching reference snippets
// make it feasible; anything else is assumed feasible with a hedged
// explanation, so unfamiliar phrasing is not refused outright.
func (a *Assessor) Assess(request string) Verdict {
	req := strings.ToLower(request)

	if term, ok := firstMatch(req, a.negative); ok {
		return Verdict{
			Feasible: false,
			Explanation: fmt.Sprintf(
				"This looks like a request about %q, which is outside what a geospatial analysis platform can answer. "+
					"Try asking about satellite imagery, elevation, climate, land cover, or similar Earth observation topics.",
				term),
		}
	}

	matched := a.matchReferences(req)

	if term, ok := firstMatch(req, a.positive); ok {
		return Verdict{
			Feasible: true,
			Explanation: fmt.Sprintf(
				"The request mentions %q, which maps onto the platform's Earth observation capabilities.", term),
			SuggestedReferences: refTitles(matched),
		}
	}
	if len(matched) >= 2 {
		return Verdict{
			Feasible:            true,
			Explanation:         "The request matches several documented platform capabilities.",
			SuggestedReferences: refTitles(matched),
		}
	}

	return Verdict{
		Feasible: true,
		Explanation: "The request does not clearly match known capabilities, but it may still be answerable; " +
			"proceeding on a best-effort basis.",
		SuggestedReferences: refTitles(matched),
	}
}

func firstMatch(req string, terms []PolicyTerm) (string, bool) {
	for _, t := range terms {
		if strings.Contains(req, t.Term) {
			return t.Term, true
		}
	}
	return "", false
}

func (a *Assessor) matchReferences(req string) []Reference {
	var out []Reference
	for _, ref := range a.refs {
		for _, kw := range ref.Keywords {
			if strings.Contains(req, kw) {
				out = append(out, ref)
				break
			}
		}
	}
	return out
}

func refTitles(refs []Reference) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Title
	}
	return out
}
