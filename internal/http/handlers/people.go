package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/http/response"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
	"github.com/yungbote/people-backend/internal/services"
)

const (
	maxSearchLimit = 50
	// room for multipart boundaries and part headers on top of the file
	multipartOverhead int64 = 64 << 10
)

type PeopleHandler struct {
	log            *logger.Logger
	peopleService  services.PeopleService
	publicBaseURL  string
	maxUploadBytes int64
}

// NewPeopleHandler caps upload request bodies at maxFileBytes plus multipart
// overhead; a non-positive maxFileBytes uses the storage default.
func NewPeopleHandler(log *logger.Logger, peopleService services.PeopleService, publicBaseURL string, maxFileBytes int64) *PeopleHandler {
	if maxFileBytes <= 0 {
		maxFileBytes = storage.DefaultMaxFileSizeBytes
	}
	return &PeopleHandler{
		log:            log.With("handler", "PeopleHandler"),
		peopleService:  peopleService,
		publicBaseURL:  strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		maxUploadBytes: maxFileBytes + multipartOverhead,
	}
}

// FileURL is where GET /files serves a stored relative path.
func (h *PeopleHandler) FileURL(path string) string {
	return h.publicBaseURL + "/files/" + strings.TrimLeft(path, "/")
}

func (h *PeopleHandler) project(p people.Person) any {
	switch v := p.(type) {
	case *people.Individual:
		return individualResponse(v, h.FileURL)
	case *people.LegalEntity:
		return legalEntityResponse(v, h.FileURL)
	default:
		return PersonSummary{ID: p.ID().String(), Kind: string(p.Kind()), DisplayName: p.DisplayName()}
	}
}

// POST /api/v1/individuals
func (h *PeopleHandler) CreateIndividual(c *gin.Context) {
	var req CreateIndividualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	ind, err := h.peopleService.CreateIndividual(c.Request.Context(), in)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondCreated(c, individualResponse(ind, h.FileURL))
}

// POST /api/v1/legal-entities
func (h *PeopleHandler) CreateLegalEntity(c *gin.Context) {
	var req CreateLegalEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	le, err := h.peopleService.CreateLegalEntity(c.Request.Context(), in)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondCreated(c, legalEntityResponse(le, h.FileURL))
}

// GET /api/v1/people/:id
func (h *PeopleHandler) GetPerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, found, err := h.peopleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	if !found {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("person not found"))
		return
	}
	response.RespondOK(c, h.project(p))
}

// GET /api/v1/people/search?name=&limit=
func (h *PeopleHandler) SearchPeople(c *gin.Context) {
	limit := maxSearchLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondFieldError(c, http.StatusBadRequest, "validation_failed", "limit", errors.New("must be a positive integer"))
			return
		}
		limit = min(n, maxSearchLimit)
	}
	found, err := h.peopleService.SearchByName(c.Request.Context(), c.Query("name"), limit)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	out := make([]PersonSummary, 0, len(found))
	for _, p := range found {
		out = append(out, PersonSummary{ID: p.ID().String(), Kind: string(p.Kind()), DisplayName: p.DisplayName()})
	}
	response.RespondOK(c, out)
}

// POST /api/v1/individuals/:id/photo
func (h *PeopleHandler) UploadPhoto(c *gin.Context) {
	h.upload(c, h.peopleService.AttachPhoto)
}

// POST /api/v1/legal-entities/:id/logo
func (h *PeopleHandler) UploadLogo(c *gin.Context) {
	h.upload(c, h.peopleService.AttachLogo)
}

type attachFunc func(ctx context.Context, id uuid.UUID, content io.Reader, filename string) (string, error)

func (h *PeopleHandler) upload(c *gin.Context, attach attachFunc) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fh, err := c.FormFile("file")
	if bodyTooLarge(err) {
		response.RespondFieldError(c, http.StatusBadRequest, string(storage.CodeTooLarge), "file", errors.New("upload exceeds the maximum file size"))
		return
	}
	if err != nil {
		response.RespondFieldError(c, http.StatusBadRequest, "validation_failed", "file", errors.New("multipart field \"file\" is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer f.Close()

	stored, err := attach(c.Request.Context(), id, f, fh.Filename)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	c.Header("Location", h.FileURL(stored))
	c.Status(http.StatusNoContent)
}

func bodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var mbErr *http.MaxBytesError
	// multipart may flatten the reader error into its message
	return errors.As(err, &mbErr) || strings.Contains(err.Error(), "request body too large")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondFieldError(c, http.StatusBadRequest, "validation_failed", "id", errors.New("must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}
