package domain

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownTask        = errors.New("task definition not found")
	ErrTaskAlreadyClaimed = errors.New("credits for this task already claimed")
	ErrTaskNotComplete    = errors.New("task not yet completed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotInitialized     = errors.New("store client not initialized")

	// Upstream errors distinguish how the external store failed; all of them
	// surface as a 500 at the HTTP boundary.
	ErrUpstreamUnavailable = errors.New("upstream store unavailable")
	ErrUpstreamRead        = errors.New("upstream read failed")
	ErrUpstreamWrite       = errors.New("upstream write failed")
)

// ProviderError carries a message the auth provider returned for a rejected
// signup or login. The message is propagated to the client verbatim, matching
// the provider's own API behaviour.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}
