package matching

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/utkarshgupta137/httpmock/internal/model"
)

// distanceFor scores how dissimilar two strings are, lower meaning closer.
// The integer division below truncates toward zero, and since the similarity
// term (l-lev)/l is less than 1 whenever the strings differ, the result is
// 100 for every non-identical pair, 99 for identical non-empty ones, and 0
// only when both strings are empty. Known quirk, kept for wire compatibility with existing
// consumers of the rejection explanation; do not "fix" without revisiting
// every ranking test. See the note on Rejection in engine.go.
func distanceFor(expected, actual string) int {
	l := len(expected) + len(actual)
	if l == 0 {
		return 0
	}
	similarity := (l - levenshtein.ComputeDistance(expected, actual)) / l
	return 100 - similarity
}

// detailMaxLen is the per-side length ceiling (after trimming) below which a
// Mismatch gets a full DetailedDiffResult attached. Longer values still get a
// SimpleDiffResult with the raw expected/actual strings, but skip the
// token-level diff — producing and serializing a line-by-line diff over a
// multi-kilobyte body buys a test author nothing a truncated string
// comparison doesn't already tell them.
const detailMaxLen = 256

// detailIfShort builds a DetailedDiffResult for expected/actual when both are
// short enough to be worth rendering in full; otherwise it returns nil so
// the Mismatch carries only its SimpleDiffResult.
func detailIfShort(expected, actual string) *model.DetailedDiffResult {
	if len(strings.TrimSpace(expected)) > detailMaxLen || len(strings.TrimSpace(actual)) > detailMaxLen {
		return nil
	}
	tok := chooseTokenizer(expected, actual)
	detail := buildDiff(expected, actual, tok)
	return &detail
}

// buildDiff tokenizes expected and actual per tok and runs a sequence match
// over the tokens, producing a run-length encoded list of Same/Add/Remove
// spans. Distance is the number of tokens touched by a non-equal opcode —
// the edit distance over the chosen tokens, not the character-level score
// computed by distanceFor.
func buildDiff(expected, actual string, tok model.Tokenizer) model.DetailedDiffResult {
	a := tokenize(expected, tok)
	b := tokenize(actual, tok)

	matcher := difflib.NewMatcher(a, b)
	opcodes := matcher.GetOpCodes()

	result := model.DetailedDiffResult{Tokenizer: tok}
	for _, op := range opcodes {
		switch op.Tag {
		case 'e':
			result.Differences = append(result.Differences, model.Diff{
				Op: model.DiffSame, Text: strings.Join(a[op.I1:op.I2], ""),
			})
		case 'd':
			result.Differences = append(result.Differences, model.Diff{
				Op: model.DiffRemove, Text: strings.Join(a[op.I1:op.I2], ""),
			})
			result.Distance += op.I2 - op.I1
		case 'i':
			result.Differences = append(result.Differences, model.Diff{
				Op: model.DiffAdd, Text: strings.Join(b[op.J1:op.J2], ""),
			})
			result.Distance += op.J2 - op.J1
		case 'r':
			result.Differences = append(result.Differences, model.Diff{
				Op: model.DiffRemove, Text: strings.Join(a[op.I1:op.I2], ""),
			})
			result.Differences = append(result.Differences, model.Diff{
				Op: model.DiffAdd, Text: strings.Join(b[op.J1:op.J2], ""),
			})
			result.Distance += max(op.I2-op.I1, op.J2-op.J1)
		}
	}
	return result
}

// tokenize splits s into the unit difflib should diff over. Character tokens
// rejoin losslessly; Line tokens do too except that difflib.SplitLines
// appends a newline to the last line; Word tokens drop the original
// whitespace, which is acceptable since the diff is for display, not replay.
func tokenize(s string, tok model.Tokenizer) []string {
	switch tok {
	case model.TokenizerLine:
		return difflib.SplitLines(s)
	case model.TokenizerCharacter:
		out := make([]string, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out
	default: // TokenizerWord
		return strings.Fields(s)
	}
}

// chooseTokenizer picks Line when either side spans multiple lines, Word
// when either side contains whitespace, and Character otherwise (a single
// token like a method name or status code, where word-splitting would leave
// nothing to diff).
func chooseTokenizer(expected, actual string) model.Tokenizer {
	if strings.Contains(expected, "\n") || strings.Contains(actual, "\n") {
		return model.TokenizerLine
	}
	if strings.IndexFunc(expected, unicode.IsSpace) >= 0 || strings.IndexFunc(actual, unicode.IsSpace) >= 0 {
		return model.TokenizerWord
	}
	return model.TokenizerCharacter
}
