package completion

import (
	"fmt"

	"gretutor/internal/domain"
)

// UpstreamError reports any failure of the remote completion API. The cause
// (network, auth, rate limit, malformed body) is kept for logs but not
// distinguished by callers.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Provider, domain.ErrUpstream, e.Err)
}

// Unwrap exposes both the domain sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	return []error{domain.ErrUpstream, e.Err}
}

// NewUpstreamError wraps err as an UpstreamError for provider.
func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}
