package port

import "context"

// CompletionInput carries a single prompt for the remote completion API.
type CompletionInput struct {
	Prompt        string
	SystemMessage string // optional; sent as a system-role message when set
	MaxTokens     int    // 0 means the client's configured default
}

// CompletionClient abstracts the remote LLM completion API.
type CompletionClient interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
}
