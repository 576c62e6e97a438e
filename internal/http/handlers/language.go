package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/response"
	"github.com/voxscribe/transcription-backend/internal/services"
)

type LanguageHandler struct {
	languageService services.LanguageService
}

func NewLanguageHandler(languageService services.LanguageService) *LanguageHandler {
	return &LanguageHandler{languageService: languageService}
}

// GET /languages
func (lh *LanguageHandler) List(c *gin.Context) {
	languages, err := lh.languageService.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"languages": languages})
}

// POST /languages
func (lh *LanguageHandler) Create(c *gin.Context) {
	var req services.LanguageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	language, err := lh.languageService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"language": language})
}
