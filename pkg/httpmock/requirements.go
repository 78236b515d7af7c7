package httpmock

import "github.com/utkarshgupta137/httpmock/internal/model"

// Requirements describes a mock's expectations about an incoming request.
// Every field is optional ("don't care" when empty/nil); a request matches a
// mock iff every facet the mock sets passes its matcher. Fields that
// logically belong to the same facet (e.g. BodyContains and BodyMatches) may
// be set simultaneously — each becomes its own matcher and all of them must
// pass.
type Requirements = model.Requirements
