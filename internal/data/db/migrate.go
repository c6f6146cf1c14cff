package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/data/repos/person"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&person.IndividualRow{},
		&person.LegalEntityRow{},
		&audit.Event{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
