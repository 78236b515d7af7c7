package matching

import (
	"sort"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// Winner is the mock the engine selected to serve a request.
type Winner struct {
	Mock *model.ActiveMock
}

// CandidateRejection is one mock's failed-match breakdown, kept for
// rendering a Rejection's explanation.
type CandidateRejection struct {
	MockID     int
	TotalScore int
	Facets     []FacetResult
}

// Rejection explains why no mock matched a request: every candidate's
// per-facet mismatches, ordered closest-match first (ascending total
// score — lower means fewer/smaller mismatches). The caller renders
// Candidates[0] as the primary explanation and the rest as a condensed
// summary (see renderRejection in pkg/httpmock).
//
// Because distanceFor's scoring collapses almost every non-identical pair to
// 100, "closest first" mostly degenerates to "fewest failing facets first,
// ties broken by mock id" — a direct consequence of the scoring bug
// preserved in diff.go, not a bug in this sort.
type Rejection struct {
	Candidates []CandidateRejection
}

// Evaluate matches r against every mock in mocks, which must already be in
// ascending id order. It returns a Winner for the first mock (lowest id)
// whose requirements are fully satisfied, implementing the "lowest id wins"
// tie-break among multiple full matches. If no mock matches, it returns a
// Rejection built from every candidate's partial match breakdown, with
// nothing short-circuited so the explanation is complete.
func Evaluate(mocks []*model.ActiveMock, r *model.Request) (*Winner, *Rejection) {
	candidates := make([]CandidateRejection, 0, len(mocks))

	for _, m := range mocks {
		matched, facets := MatchRequirements(&m.Definition.Requirements, r)
		if matched {
			return &Winner{Mock: m}, nil
		}
		candidates = append(candidates, CandidateRejection{
			MockID:     m.ID,
			TotalScore: totalScore(facets),
			Facets:     facets,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore < candidates[j].TotalScore
		}
		return candidates[i].MockID < candidates[j].MockID
	})
	if len(candidates) > 0 {
		candidates[0].Facets = markBestMatch(candidates[0].Facets)
	}

	return nil, &Rejection{Candidates: candidates}
}

func totalScore(facets []FacetResult) int {
	total := 0
	for _, f := range facets {
		for _, m := range f.Mismatches {
			total += m.Score
		}
	}
	return total
}

// markBestMatch flags every Mismatch.Reason of the closest candidate so a
// renderer can highlight it without re-deriving which candidate was
// closest.
func markBestMatch(facets []FacetResult) []FacetResult {
	out := make([]FacetResult, len(facets))
	for i, f := range facets {
		mismatches := make([]model.Mismatch, len(f.Mismatches))
		for j, m := range f.Mismatches {
			if m.Reason != nil {
				r := *m.Reason
				r.BestMatch = true
				m.Reason = &r
			}
			mismatches[j] = m
		}
		out[i] = FacetResult{Facet: f.Facet, Mismatches: mismatches}
	}
	return out
}
