package httpmock

import (
	"github.com/utkarshgupta137/httpmock/internal/matching"
	"github.com/utkarshgupta137/httpmock/internal/model"
)

// Tokenizer names the granularity at which a DetailedDiffResult was computed.
type Tokenizer = model.Tokenizer

const (
	TokenizerLine      = model.TokenizerLine
	TokenizerWord      = model.TokenizerWord
	TokenizerCharacter = model.TokenizerCharacter
)

// DiffOp tags one element of a DetailedDiffResult's differences list.
type DiffOp = model.DiffOp

const (
	DiffSame   = model.DiffSame
	DiffAdd    = model.DiffAdd
	DiffRemove = model.DiffRemove
)

// Diff is one token run in a DetailedDiffResult.
type Diff = model.Diff

// DetailedDiffResult is a token-level diff between an expected and actual
// string, attached to a Mismatch when both sides are short enough to be
// worth rendering in full.
type DetailedDiffResult = model.DetailedDiffResult

// SimpleDiffResult names the comparator that failed and the two values it
// compared.
type SimpleDiffResult = model.SimpleDiffResult

// Mismatch is a single failing facet of a single mock evaluated against a
// single request.
type Mismatch = model.Mismatch

// FacetResult is the outcome of matching one named facet of a mock's
// requirements against a request.
type FacetResult = matching.FacetResult

// CandidateRejection is one mock's failed-match breakdown.
type CandidateRejection = matching.CandidateRejection

// Rejection explains why no mock matched a request: every candidate's
// per-facet mismatches, ordered closest-match first.
type Rejection = matching.Rejection
