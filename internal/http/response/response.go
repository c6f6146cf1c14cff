package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/platform/apierr"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	RespondFieldError(c, status, code, "", err)
}

func RespondFieldError(c *gin.Context, status int, code, field string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
			Field:   field,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondFromError maps the error taxonomy onto HTTP. Anything unclassified
// is logged and answered with a generic 500.
func RespondFromError(c *gin.Context, log *logger.Logger, err error) {
	if apiErr, ok := apierr.As(err); ok {
		RespondFieldError(c, apiErr.Status, apiErr.Code, apiErr.Field, apiErr.Err)
		return
	}
	if vErr, ok := people.AsValidationError(err); ok {
		RespondFieldError(c, http.StatusBadRequest, "validation_failed", vErr.Field, errors.New(vErr.Reason))
		return
	}
	if storage.IsRejected(err) {
		RespondError(c, http.StatusBadRequest, string(storage.CodeOf(err)), err)
		return
	}
	switch domainagg.CodeOf(err) {
	case domainagg.CodeNotFound:
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	case domainagg.CodeConflict:
		RespondFieldError(c, http.StatusConflict, "conflict", domainagg.FieldOf(err), conflictMessage(err))
		return
	case domainagg.CodeStorageRejected, domainagg.CodeValidation:
		RespondFieldError(c, http.StatusBadRequest, "validation_failed", domainagg.FieldOf(err), err)
		return
	case domainagg.CodeRetryable:
		if errors.Is(err, context.Canceled) {
			c.Status(499)
			return
		}
		RespondError(c, http.StatusServiceUnavailable, "retryable", errors.New("temporarily unavailable, retry later"))
		return
	}
	if log != nil {
		log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
}

// conflictMessage keeps the outermost message and drops driver detail.
func conflictMessage(err error) error {
	if msg := domainagg.MessageOf(err); msg != "" {
		return errors.New(msg)
	}
	return errors.New("conflict")
}
