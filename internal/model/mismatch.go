package model

// Tokenizer names the granularity at which a DetailedDiffResult was computed.
type Tokenizer string

const (
	TokenizerLine      Tokenizer = "Line"
	TokenizerWord      Tokenizer = "Word"
	TokenizerCharacter Tokenizer = "Character"
)

// DiffOp tags one element of a DetailedDiffResult's differences list.
type DiffOp string

const (
	DiffSame   DiffOp = "Same"
	DiffAdd    DiffOp = "Add"
	DiffRemove DiffOp = "Remove"
)

// Diff is one token run in a DetailedDiffResult, tagged with whether it was
// unchanged, added (present only in the actual value), or removed (present
// only in the expected value).
type Diff struct {
	Op   DiffOp
	Text string
}

// DetailedDiffResult is a token-level diff between an expected and actual
// string, attached to a Mismatch when both sides are short enough to be
// worth rendering in full.
type DetailedDiffResult struct {
	Differences []Diff
	Distance    int
	Tokenizer   Tokenizer
}

// SimpleDiffResult names the comparator that failed and the two values it
// compared, independent of whether a DetailedDiffResult was also attached.
type SimpleDiffResult struct {
	Expected      string
	Actual        string
	OperationName string
	// BestMatch is set on the mismatches belonging to the closest mock in a
	// Rejection — the candidate with the lowest total distance score.
	BestMatch bool
}

// Mismatch is a single failing facet of a single mock evaluated against a
// single request.
type Mismatch struct {
	Title    string
	Message  string
	Reason   *SimpleDiffResult
	Detailed *DetailedDiffResult
	// Score is 0 iff the facet matched exactly (invariant I4); otherwise it
	// is the facet's contribution to the mock's total distance score.
	Score int
}
