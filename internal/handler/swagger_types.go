package handler

// Swagger type definitions for API documentation.
// The request types double as gin binding targets.

// --- Request Types ---

// AskRequest represents the /ask request body.
type AskRequest struct {
	Query *string `json:"query" binding:"required" example:"What is the difference between mean and median?"`
}

// FollowUpRequest represents the /follow-up request body.
type FollowUpRequest struct {
	Question        *string `json:"question" binding:"required" example:"Why is option C wrong?"`
	PreviousContext string  `json:"previous_context" example:"<h2>1. Correct Answer</h2> B"`
}

// FeedbackRequest represents the /feedback request body.
type FeedbackRequest struct {
	Helpful  *bool  `json:"helpful" binding:"required" example:"true"`
	Response string `json:"response" example:"<h2>1. Correct Answer</h2> B"`
}

// --- Response Types ---

// AnswerResponse is returned by every JSON tutor endpoint.
type AnswerResponse struct {
	Answer string `json:"answer" example:"x = 2"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail" example:"tesseract error: exit status 1"`
}

// VersionResponse is returned by /tesseract-version on success.
type VersionResponse struct {
	Version string `json:"version" example:"5.3.0"`
}

// VersionErrorResponse is returned by /tesseract-version when the engine is unavailable.
type VersionErrorResponse struct {
	Error string `json:"error" example:"tesseract error: exec: \"tesseract\": executable file not found in $PATH"`
}

// FeedbackResponse acknowledges a feedback submission.
type FeedbackResponse struct {
	Status string `json:"status" example:"received"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
