package domain

import "strings"

// ConversationTurn is one message of the client-supplied conversation history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptKind identifies which tutor template rendered a prompt.
type PromptKind string

const (
	PromptKindGeneral  PromptKind = "general"
	PromptKindVerbal   PromptKind = "verbal"
	PromptKindQuant    PromptKind = "quant"
	PromptKindWriting  PromptKind = "writing"
	PromptKindFollowUp PromptKind = "follow_up"
)

// Feedback is a user's verdict on a tutor response. It is logged, never stored.
type Feedback struct {
	Helpful  bool
	Response string
}

// Excerpt returns at most n bytes of the response, for log lines.
func (f Feedback) Excerpt(n int) string {
	s := strings.TrimSpace(f.Response)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
