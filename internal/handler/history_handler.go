package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"snaptex/internal/service"
)

// HistoryHandler handles recognition-history endpoints.
type HistoryHandler struct {
	history service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.history.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Remove handles DELETE /api/v1/history/:id
func (h *HistoryHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid history record id")
		return
	}

	if err := h.history.Remove(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetImage handles GET /api/v1/history/:id/image
func (h *HistoryHandler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid history record id")
		return
	}

	data, contentType, err := h.history.GetImage(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// Export handles GET /api/v1/history/export?format=csv|xlsx
func (h *HistoryHandler) Export(c *gin.Context) {
	filename := "history-" + time.Now().UTC().Format("20060102-150405")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := h.history.ExportCSV(c.Request.Context(), c.Writer); err != nil {
			HandleError(c, err)
		}
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := h.history.ExportXLSX(c.Request.Context(), c.Writer); err != nil {
			HandleError(c, err)
		}
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "export format must be csv or xlsx")
	}
}
