package httpmock

import "github.com/utkarshgupta137/httpmock/internal/model"

// Response is the canned response a mock serves when it wins the match.
type Response = model.Response

// Definition is a mock's full expectation plus the response to serve when it
// wins the match.
type Definition = model.Definition

// Identification is the wire shape returned by the management API after a
// mock has been registered: just the id the registry assigned.
type Identification = model.Identification

// ActiveMock is a stored Definition plus its running call counter. It is the
// unit the registry hands out on lookups.
type ActiveMock = model.ActiveMock
