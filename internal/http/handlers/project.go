package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/response"
	"github.com/voxscribe/transcription-backend/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	folderService  services.FolderService
	segmentService services.SegmentService
}

func NewProjectHandler(projectService services.ProjectService, folderService services.FolderService, segmentService services.SegmentService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		folderService:  folderService,
		segmentService: segmentService,
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return 0, false
	}
	return uint(value), true
}

// GET /projects
func (ph *ProjectHandler) List(c *gin.Context) {
	projects, err := ph.projectService.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}

// GET /projects/:id
func (ph *ProjectHandler) GetByID(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	project, err := ph.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// PATCH /projects/:id
func (ph *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	project, err := ph.projectService.Update(c.Request.Context(), projectID, req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// POST /projects/:id/recalculate-stats
func (ph *ProjectHandler) RecalculateStats(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	project, err := ph.projectService.RecalculateStats(c.Request.Context(), projectID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// DELETE /projects/:id
func (ph *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ph.projectService.Delete(c.Request.Context(), projectID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /projects/:id/folders
func (ph *ProjectHandler) ListFolders(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	folders, err := ph.folderService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"folders": folders})
}

// GET /projects/:id/segments
func (ph *ProjectHandler) ListSegments(c *gin.Context) {
	projectID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	segments, err := ph.segmentService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"segments": segments})
}
