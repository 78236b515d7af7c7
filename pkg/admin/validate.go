package admin

import (
	"fmt"
	"regexp"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// validateDefinition rejects a mock definition whose requirements could
// never be evaluated (a malformed regex pattern) or whose response status is
// explicitly set outside the valid HTTP range. This is
// the ValidationError path: it runs synchronously inside Add's caller,
// before any state is stored, so a rejected definition never partially
// registers.
func validateDefinition(def model.Definition) error {
	for _, p := range def.Requirements.PathMatches {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("path_matches pattern %q: %w", p, err)
		}
	}
	for _, p := range def.Requirements.BodyMatches {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("body_matches pattern %q: %w", p, err)
		}
	}
	// Status 0 means "not set" and defaults to 200 when the response is
	// written (see pkg/httpmock.writeResponse); only a status explicitly set
	// outside the valid HTTP range is a validation error.
	if def.Response.Status != 0 && (def.Response.Status < 100 || def.Response.Status > 599) {
		return fmt.Errorf("response status %d is not a valid HTTP status code", def.Response.Status)
	}
	return nil
}
