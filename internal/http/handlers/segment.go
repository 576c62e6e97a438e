package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/response"
	"github.com/voxscribe/transcription-backend/internal/services"
)

type SegmentHandler struct {
	segmentService services.SegmentService
}

func NewSegmentHandler(segmentService services.SegmentService) *SegmentHandler {
	return &SegmentHandler{segmentService: segmentService}
}

// GET /segments/:id
func (sh *SegmentHandler) GetByID(c *gin.Context) {
	segmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	segment, err := sh.segmentService.GetByID(c.Request.Context(), segmentID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"segment": segment})
}

// PATCH /segments/:id
func (sh *SegmentHandler) Update(c *gin.Context) {
	segmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.SegmentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	segment, err := sh.segmentService.Update(c.Request.Context(), segmentID, req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"segment": segment})
}

// DELETE /segments/:id
func (sh *SegmentHandler) Delete(c *gin.Context) {
	segmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := sh.segmentService.Delete(c.Request.Context(), segmentID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
