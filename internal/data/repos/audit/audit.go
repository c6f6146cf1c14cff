package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

type Event struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string         `gorm:"column:action;size:64;not null;index" json:"action"`
	EntityType string         `gorm:"column:entity_type;size:32;not null" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid;column:entity_id;index" json:"entity_id,omitempty"`
	Actor      string         `gorm:"column:actor;size:128;not null;default:''" json:"actor"`
	Extra      datatypes.JSON `gorm:"column:extra;type:jsonb" json:"extra"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (Event) TableName() string { return "audit_events" }

type Repo interface {
	Create(dbc dbctx.Context, ev *Event) error
	ListByEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*Event, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepo(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "AuditRepo")}
}

func (r *repo) Create(dbc dbctx.Context, ev *Event) error {
	if ev == nil {
		return nil
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if len(ev.Extra) == 0 {
		ev.Extra = datatypes.JSON([]byte("{}"))
	}
	return dbc.DB(r.db).Create(ev).Error
}

func (r *repo) ListByEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*Event, error) {
	var out []*Event
	err := dbc.DB(r.db).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
