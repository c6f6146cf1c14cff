package person

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

// WriteRepo stages aggregate changes on a unit of work. Nothing reaches the
// database until the unit of work commits.
type WriteRepo interface {
	AddIndividual(ind *people.Individual)
	AddLegalEntity(le *people.LegalEntity)
	UpdateIndividualPhoto(dbc dbctx.Context, id uuid.UUID, path *string) (bool, error)
	UpdateLegalEntityLogo(dbc dbctx.Context, id uuid.UUID, path *string) (bool, error)
}

type writeRepo struct {
	db  *gorm.DB
	log *logger.Logger
	uow *aggregates.UnitOfWork
}

func NewWriteRepo(db *gorm.DB, baseLog *logger.Logger, uow *aggregates.UnitOfWork) WriteRepo {
	return &writeRepo{
		db:  db,
		log: baseLog.With("repo", "PersonWriteRepo"),
		uow: uow,
	}
}

func (r *writeRepo) AddIndividual(ind *people.Individual) {
	if ind == nil {
		return
	}
	r.uow.Stage(aggregates.Write{
		Op:     "individual.insert",
		Entity: ind,
		Apply: func(dbc dbctx.Context) (int64, error) {
			res := dbc.DB(r.db).Create(individualRow(ind))
			return res.RowsAffected, res.Error
		},
	})
}

func (r *writeRepo) AddLegalEntity(le *people.LegalEntity) {
	if le == nil {
		return
	}
	r.uow.Stage(aggregates.Write{
		Op:     "legal_entity.insert",
		Entity: le,
		Apply: func(dbc dbctx.Context) (int64, error) {
			res := dbc.DB(r.db).Create(legalEntityRow(le))
			return res.RowsAffected, res.Error
		},
	})
}

func (r *writeRepo) UpdateIndividualPhoto(dbc dbctx.Context, id uuid.UUID, path *string) (bool, error) {
	var row IndividualRow
	err := dbc.DB(r.db).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ind := row.toDomain()
	if err := ind.UpdatePhoto(path); err != nil {
		return false, err
	}
	r.uow.Stage(aggregates.Write{
		Op:     "individual.update_photo",
		Entity: ind,
		Apply: func(dbc dbctx.Context) (int64, error) {
			s := ind.Snapshot()
			res := dbc.DB(r.db).Model(&IndividualRow{}).Where("id = ?", s.ID).
				Updates(map[string]any{"photo_path": s.PhotoPath, "updated_at": s.UpdatedAt})
			return res.RowsAffected, res.Error
		},
	})
	return true, nil
}

func (r *writeRepo) UpdateLegalEntityLogo(dbc dbctx.Context, id uuid.UUID, path *string) (bool, error) {
	var row LegalEntityRow
	err := dbc.DB(r.db).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	le := row.toDomain()
	if err := le.UpdateLogo(path); err != nil {
		return false, err
	}
	r.uow.Stage(aggregates.Write{
		Op:     "legal_entity.update_logo",
		Entity: le,
		Apply: func(dbc dbctx.Context) (int64, error) {
			s := le.Snapshot()
			res := dbc.DB(r.db).Model(&LegalEntityRow{}).Where("id = ?", s.ID).
				Updates(map[string]any{"logo_path": s.LogoPath, "updated_at": s.UpdatedAt})
			return res.RowsAffected, res.Error
		},
	})
	return true, nil
}
