package port

import "context"

// ComputeFunc produces the answer for a prompt on a cache miss.
type ComputeFunc func(ctx context.Context, prompt string) (string, error)

// ResponseCache memoizes completion answers keyed on the exact prompt string.
type ResponseCache interface {
	GetOrCompute(ctx context.Context, prompt string, compute ComputeFunc) (string, error)
}
