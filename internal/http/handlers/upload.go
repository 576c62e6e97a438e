package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/response"
	"github.com/voxscribe/transcription-backend/internal/services"
)

// Per-file cap. Batches are bounded by gin's MaxMultipartMemory plus
// whatever the reverse proxy allows.
const maxUploadFileBytes = 500 << 20

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// POST /uploads/batch (multipart/form-data)
// fields: "files" (repeated), "projectName" (optional), "languageId" (optional)
func (uh *UploadHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var projectName *string
	if values := form.Value["projectName"]; len(values) > 0 && values[0] != "" {
		projectName = &values[0]
	}
	var languageID *uint
	if values := form.Value["languageId"]; len(values) > 0 && values[0] != "" {
		parsed, err := strconv.ParseUint(values[0], 10, 32)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		id := uint(parsed)
		languageID = &id
	}

	fileHeaders := form.File["files"]
	files := make([]services.BatchUploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if header.Size > maxUploadFileBytes {
			response.RespondError(c, http.StatusBadRequest, "file_too_large", nil)
			return
		}
		f, err := header.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "read_file_failed", err)
			return
		}
		files = append(files, services.BatchUploadFile{
			Filename: header.Filename,
			Data:     data,
		})
	}

	summary, err := uh.uploadService.ProcessBatch(c.Request.Context(), files, projectName, languageID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, summary)
}
