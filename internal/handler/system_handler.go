package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gretutor/internal/service"
)

// SystemHandler reports on the OCR engine.
type SystemHandler struct {
	tutorService service.TutorService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(tutorService service.TutorService) *SystemHandler {
	return &SystemHandler{tutorService: tutorService}
}

// TesseractVersion handles GET /tesseract-version
// @Summary Report the installed Tesseract version
// @Description Failures are reported as {"error": "..."} with status 200.
// @Tags system
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /tesseract-version [get]
func (h *SystemHandler) TesseractVersion(c *gin.Context) {
	version, err := h.tutorService.OCRVersion(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("tesseract version unavailable")
		c.JSON(http.StatusOK, VersionErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, VersionResponse{Version: version})
}
