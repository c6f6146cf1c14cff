package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-backend/internal/http/response"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

type FilesHandler struct {
	log     *logger.Logger
	storage storage.Service
}

func NewFilesHandler(log *logger.Logger, storageSvc storage.Service) *FilesHandler {
	return &FilesHandler{log: log.With("handler", "FilesHandler"), storage: storageSvc}
}

// GET /files/*path
func (fh *FilesHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	rc, contentType, err := fh.storage.Open(c.Request.Context(), rel)
	if err != nil {
		switch storage.CodeOf(err) {
		case storage.CodeNotFound, storage.CodeInvalidPath:
			response.RespondError(c, http.StatusNotFound, "not_found", errors.New("file not found"))
		default:
			response.RespondFromError(c, fh.log, err)
		}
		return
	}
	defer rc.Close()
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
