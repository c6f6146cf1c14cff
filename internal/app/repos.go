package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/data/repos/person"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

// Repos holds the read side and the audit trail. Write repos are bound to
// a per-request unit of work and are built by the services.
type Repos struct {
	PersonRead person.ReadRepo
	Audit      audit.Repo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		PersonRead: person.NewReadRepo(db, log),
		Audit:      audit.NewRepo(db, log),
	}
}
