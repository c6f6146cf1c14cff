package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/platform/ctxutil"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

const (
	AuditPersonCreated     = "person.created"
	AuditPhotoAttached     = "person.photo_attached"
	AuditLogoAttached      = "person.logo_attached"
	AuditLoginSucceeded    = "auth.login_succeeded"
	AuditLoginFailed       = "auth.login_failed"
	AuditEntityIndividual  = "individual"
	AuditEntityLegalEntity = "legal_entity"
	AuditEntityCredential  = "credential"
)

// AuditService records who did what. Recording never fails the caller's
// operation; a failed insert is logged and dropped.
type AuditService interface {
	Record(ctx context.Context, action, entityType string, entityID *uuid.UUID, extra map[string]any)
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, string, string, *uuid.UUID, map[string]any) {}

type auditService struct {
	log  *logger.Logger
	repo audit.Repo
}

func NewAuditService(log *logger.Logger, repo audit.Repo) AuditService {
	return &auditService{log: log.With("service", "AuditService"), repo: repo}
}

func (s *auditService) Record(ctx context.Context, action, entityType string, entityID *uuid.UUID, extra map[string]any) {
	actor := ctxutil.Actor(ctx)
	fields := []interface{}{"action", action, "entity_type", entityType, "actor", actor}
	if entityID != nil {
		fields = append(fields, "entity_id", entityID.String())
	}
	s.log.Info("audit", fields...)

	if s.repo == nil {
		return
	}
	if rid := ctxutil.RequestID(ctx); rid != "" {
		merged := make(map[string]any, len(extra)+1)
		for k, v := range extra {
			merged[k] = v
		}
		merged["request_id"] = rid
		extra = merged
	}
	raw := []byte("{}")
	if len(extra) > 0 {
		b, err := json.Marshal(extra)
		if err != nil {
			s.log.Warn("audit extra not serializable", "action", action, "error", err)
		} else {
			raw = b
		}
	}
	ev := &audit.Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Extra:      datatypes.JSON(raw),
	}
	if err := s.repo.Create(dbctx.Context{Ctx: context.WithoutCancel(ctx)}, ev); err != nil {
		s.log.Warn("audit insert failed", "action", action, "error", err)
	}
}
