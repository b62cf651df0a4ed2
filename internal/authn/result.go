package authn

import "github.com/MKhiriev/go-user-gateway/internal/token"

// Decision is the terminal state of the filter.
type Decision int

const (
	// Deny short-circuits the request with 401 Unauthorized.
	Deny Decision = iota
	// Allow forwards the request unchanged.
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Reasons attached to a [Result]. Token failures reuse [token.Reason] names.
const (
	ReasonUnsecured    = "unsecured"
	ReasonMissingToken = "missing_token"
	ReasonValid        = "valid"
)

// Result describes how the filter reached its decision. It is internal
// diagnostic data: the client only ever sees the status code.
type Result struct {
	Decision Decision
	Reason   string
	// Secured reports whether the path required a token.
	Secured bool
	// Subject is set when a valid token allowed the request.
	Subject token.Subject
}
