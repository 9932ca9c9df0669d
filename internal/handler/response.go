package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gretutor/internal/domain"
	"gretutor/internal/middleware"
)

// RespondAnswer sends a 200 {"answer": ...} response.
func RespondAnswer(c *gin.Context, answer string) {
	c.JSON(http.StatusOK, AnswerResponse{Answer: answer})
}

// RespondHTML sends the answer as a raw HTML body with status 200.
func RespondHTML(c *gin.Context, html string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// RespondDetail sends an error response with the given status code.
func RespondDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: msg})
}

// MapDomainError translates domain errors to HTTP status codes. Pipeline
// failures are all 500; only request validation is distinguished.
func MapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// The error's own message is the detail.
func HandleError(c *gin.Context, err error) {
	status := MapDomainError(err)
	event := log.Warn()
	if status >= 500 {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("request failed")
	RespondDetail(c, status, err.Error())
}
