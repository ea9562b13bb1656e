package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"snaptex/internal/service"
)

// CaptureHandler handles the recognition pipeline endpoints.
type CaptureHandler struct {
	pipeline service.PipelineService
}

// NewCaptureHandler creates a new CaptureHandler.
func NewCaptureHandler(pipeline service.PipelineService) *CaptureHandler {
	return &CaptureHandler{pipeline: pipeline}
}

// Recognize handles POST /api/v1/capture. The extension pushes a
// full-viewport capture plus the user's selection; the response carries the
// recognized text and the clipboard delivery outcome.
func (h *CaptureHandler) Recognize(c *gin.Context) {
	var input service.CaptureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.pipeline.Recognize(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// RecognizePage handles POST /api/v1/capture/page. The server drives its
// own browser to capture the page, so no extension is needed.
func (h *CaptureHandler) RecognizePage(c *gin.Context) {
	var input service.PageCaptureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.pipeline.RecognizePage(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// RecognizeURL handles POST /api/v1/recognize/url for images addressable by
// URL, skipping the capture and crop steps.
func (h *CaptureHandler) RecognizeURL(c *gin.Context) {
	var input service.ImageURLInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.pipeline.RecognizeURL(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}
