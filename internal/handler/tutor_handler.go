package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gretutor/internal/domain"
	"gretutor/internal/service"
)

// TutorHandler handles the question answering endpoints.
type TutorHandler struct {
	tutorService   service.TutorService
	maxUploadBytes int64
}

// NewTutorHandler creates a new TutorHandler. maxUploadMB <= 0 disables the size cap.
func NewTutorHandler(tutorService service.TutorService, maxUploadMB int64) *TutorHandler {
	return &TutorHandler{
		tutorService:   tutorService,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// Ask handles POST /ask
// @Summary Ask a free-form question
// @Description Forwards the query to the completion API as-is. Not cached.
// @Tags tutor
// @Accept json
// @Produce json
// @Param body body AskRequest true "Question"
// @Success 200 {object} AnswerResponse
// @Failure 400 {object} ErrorResponse "Missing query"
// @Failure 500 {object} ErrorResponse "Completion API error"
// @Router /ask [post]
func (h *TutorHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrMissingInput, err))
		return
	}

	answer, err := h.tutorService.Ask(detached(c), *req.Query)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAnswer(c, answer)
}

// AnalyzeImage handles POST /analyze-image
// @Summary Explain a GRE question from an image
// @Tags tutor
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question image"
// @Param question formData string true "What the student wants to know"
// @Success 200 {object} AnswerResponse
// @Failure 400 {object} ErrorResponse "Missing file or question"
// @Failure 500 {object} ErrorResponse "Decode, OCR or completion failure"
// @Router /analyze-image [post]
func (h *TutorHandler) AnalyzeImage(c *gin.Context) {
	input, ok := h.imageQuestion(c)
	if !ok {
		return
	}

	answer, err := h.tutorService.AnalyzeImage(detached(c), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAnswer(c, answer)
}

// AnalyzeGREVerbal handles POST /analyze-gre-verbal
// @Summary Explain a GRE verbal question with conversation context
// @Description Returns the model's answer as a raw HTML fragment.
// @Tags tutor
// @Accept multipart/form-data
// @Produce html
// @Param file formData file true "Question image"
// @Param question formData string true "Current question"
// @Param conversation_history formData string false "JSON array of {role, content}" default([])
// @Param correct_answer formData string false "Answer the student believes is correct"
// @Success 200 {string} string "HTML answer"
// @Failure 400 {object} ErrorResponse "Missing file or question"
// @Failure 500 {object} ErrorResponse "Decode, OCR, history or completion failure"
// @Router /analyze-gre-verbal [post]
func (h *TutorHandler) AnalyzeGREVerbal(c *gin.Context) {
	input, ok := h.imageQuestion(c)
	if !ok {
		return
	}

	answer, err := h.tutorService.AnalyzeVerbal(detached(c), service.VerbalInput{
		Image:               input.Image,
		Question:            input.Question,
		ConversationHistory: c.DefaultPostForm("conversation_history", "[]"),
		CorrectAnswer:       c.PostForm("correct_answer"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondHTML(c, answer)
}

// AnalyzeGREQuant handles POST /analyze-gre-quant
// @Summary Solve a GRE quantitative question from an image
// @Tags tutor
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Question image"
// @Param question formData string true "What the student wants to know"
// @Success 200 {object} AnswerResponse
// @Failure 400 {object} ErrorResponse "Missing file or question"
// @Failure 500 {object} ErrorResponse "Decode, OCR or completion failure"
// @Router /analyze-gre-quant [post]
func (h *TutorHandler) AnalyzeGREQuant(c *gin.Context) {
	input, ok := h.imageQuestion(c)
	if !ok {
		return
	}

	answer, err := h.tutorService.AnalyzeQuant(detached(c), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAnswer(c, answer)
}

// AnalyzeGREWriting handles POST /analyze-gre-writing
// @Summary Coach a GRE analytical writing prompt from an image
// @Tags tutor
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Prompt image"
// @Param question formData string true "Writing prompt or request"
// @Success 200 {object} AnswerResponse
// @Failure 400 {object} ErrorResponse "Missing file or question"
// @Failure 500 {object} ErrorResponse "Decode, OCR or completion failure"
// @Router /analyze-gre-writing [post]
func (h *TutorHandler) AnalyzeGREWriting(c *gin.Context) {
	input, ok := h.imageQuestion(c)
	if !ok {
		return
	}

	answer, err := h.tutorService.AnalyzeWriting(detached(c), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAnswer(c, answer)
}

// FollowUp handles POST /follow-up
// @Summary Ask a follow-up question about a previous explanation
// @Tags tutor
// @Accept json
// @Produce json
// @Param body body FollowUpRequest true "Follow-up"
// @Success 200 {object} AnswerResponse
// @Failure 400 {object} ErrorResponse "Missing question"
// @Failure 500 {object} ErrorResponse "Completion API error"
// @Router /follow-up [post]
func (h *TutorHandler) FollowUp(c *gin.Context) {
	var req FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrMissingInput, err))
		return
	}

	answer, err := h.tutorService.FollowUp(detached(c), *req.Question, req.PreviousContext)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAnswer(c, answer)
}

// Feedback handles POST /feedback
// @Summary Rate a tutor response
// @Description Feedback is logged and counted; nothing is stored.
// @Tags tutor
// @Accept json
// @Produce json
// @Param body body FeedbackRequest true "Feedback"
// @Success 200 {object} FeedbackResponse
// @Failure 400 {object} ErrorResponse "Invalid body"
// @Router /feedback [post]
func (h *TutorHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrMissingInput, err))
		return
	}

	fb := domain.Feedback{Helpful: *req.Helpful, Response: req.Response}
	if err := h.tutorService.RecordFeedback(c.Request.Context(), fb); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, FeedbackResponse{Status: "received"})
}

// imageQuestion reads the "file" and "question" form fields. On failure the
// error response is already written.
func (h *TutorHandler) imageQuestion(c *gin.Context) (service.ImageQuestionInput, bool) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		HandleError(c, fmt.Errorf("%w: file: %v", domain.ErrMissingInput, err))
		return service.ImageQuestionInput{}, false
	}
	question, ok := c.GetPostForm("question")
	if !ok {
		HandleError(c, fmt.Errorf("%w: question", domain.ErrMissingInput))
		return service.ImageQuestionInput{}, false
	}

	file, err := header.Open()
	if err != nil {
		HandleError(c, fmt.Errorf("open upload: %w", err))
		return service.ImageQuestionInput{}, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		HandleError(c, fmt.Errorf("read upload: %w", err))
		return service.ImageQuestionInput{}, false
	}
	return service.ImageQuestionInput{Image: data, Question: question}, true
}

// detached keeps request values but drops cancellation, so a client
// disconnect does not abort OCR or an in-flight completion.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
