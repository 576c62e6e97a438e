package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/response"
	"github.com/voxscribe/transcription-backend/internal/services"
)

type FolderHandler struct {
	folderService  services.FolderService
	segmentService services.SegmentService
}

func NewFolderHandler(folderService services.FolderService, segmentService services.SegmentService) *FolderHandler {
	return &FolderHandler{folderService: folderService, segmentService: segmentService}
}

// GET /folders/:id
func (fh *FolderHandler) GetByID(c *gin.Context) {
	folderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	folder, err := fh.folderService.GetByID(c.Request.Context(), folderID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"folder": folder})
}

// POST /folders
func (fh *FolderHandler) Create(c *gin.Context) {
	var req services.FolderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	folder, err := fh.folderService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"folder": folder})
}

// PATCH /folders/:id
func (fh *FolderHandler) Update(c *gin.Context) {
	folderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.FolderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	folder, err := fh.folderService.Update(c.Request.Context(), folderID, req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"folder": folder})
}

// DELETE /folders/:id
func (fh *FolderHandler) Delete(c *gin.Context) {
	folderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := fh.folderService.Delete(c.Request.Context(), folderID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /folders/:id/segments
func (fh *FolderHandler) ListSegments(c *gin.Context) {
	folderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	segments, err := fh.segmentService.ListByFolder(c.Request.Context(), folderID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"segments": segments})
}
