package token

import "time"

// Reason classifies a failed verification.
type Reason int

const (
	// ReasonInvalid covers malformed structure, unexpected algorithm, bad
	// signature, issuer mismatch and missing claims. These are deliberately
	// indistinguishable from one another.
	ReasonInvalid Reason = iota
	// ReasonExpired means exp <= now (after leeway).
	ReasonExpired
	// ReasonNotYetValid means nbf is still in the future (after leeway).
	ReasonNotYetValid
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalid:
		return "invalid"
	case ReasonExpired:
		return "expired"
	case ReasonNotYetValid:
		return "not_yet_valid"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of [Verifier.Verify]: either valid with a
// subject, or invalid with a reason. Callers branch on [Outcome.IsValid].
//
// The zero Outcome is invalid.
type Outcome struct {
	ok bool

	// Subject is set only for valid outcomes.
	Subject Subject
	// ExpiresAt is set only for valid outcomes.
	ExpiresAt time.Time
	// Reason is meaningful only for invalid outcomes.
	Reason Reason
}

func valid(subject Subject, expiresAt time.Time) Outcome {
	return Outcome{ok: true, Subject: subject, ExpiresAt: expiresAt}
}

func invalid(reason Reason) Outcome {
	return Outcome{Reason: reason}
}

// IsValid reports whether the token was accepted.
func (o Outcome) IsValid() bool {
	return o.ok
}

func (o Outcome) String() string {
	if o.ok {
		return "valid(" + string(o.Subject) + ")"
	}
	return "invalid(" + o.Reason.String() + ")"
}
