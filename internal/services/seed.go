package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/repos/person"
	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

func demoAddress() people.AddressParts {
	return people.AddressParts{
		Street:   "Avenida Paulista",
		Number:   "1000",
		District: "Bela Vista",
		City:     "São Paulo",
		State:    "SP",
		Zip:      "01310-100",
		Country:  "Brasil",
	}
}

// SeedDemoData creates one individual and one legal entity when both tables
// are empty. It is a no-op otherwise.
func SeedDemoData(ctx context.Context, db *gorm.DB, log *logger.Logger, svc PeopleService) error {
	seedLog := log.With("service", "DemoSeed")
	n, err := countPeople(ctx, db)
	if err != nil {
		return err
	}
	if n > 0 {
		seedLog.Info("skipping demo seed", "existing", n)
		return nil
	}

	ind, err := svc.CreateIndividual(ctx, CreateIndividualInput{
		FullName:  "Maria Silva",
		Cpf:       "111.444.777-35",
		BirthDate: time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
		Gender:    string(people.GenderFemale),
		ContactInput: ContactInput{
			Email:   "maria.silva@example.com",
			Phone:   "+55 11 91234-5678",
			Address: demoAddress(),
		},
	})
	if err != nil {
		return fmt.Errorf("seed individual: %w", err)
	}
	le, err := svc.CreateLegalEntity(ctx, CreateLegalEntityInput{
		CorporateName:           "Acme Comércio LTDA",
		TradeName:               "Acme",
		Cnpj:                    "11.222.333/0001-81",
		LegalRepresentativeName: "Maria Silva",
		LegalRepresentativeCpf:  "111.444.777-35",
		ContactInput: ContactInput{
			Email:   "contato@acme.example.com",
			Phone:   "+55 11 3000-0000",
			Address: demoAddress(),
		},
	})
	if err != nil {
		return fmt.Errorf("seed legal entity: %w", err)
	}
	seedLog.Info("demo data seeded", "individual_id", ind.ID(), "legal_entity_id", le.ID())
	return nil
}

func countPeople(ctx context.Context, db *gorm.DB) (int64, error) {
	var individuals, entities int64
	if err := db.WithContext(ctx).Model(&person.IndividualRow{}).Count(&individuals).Error; err != nil {
		return 0, fmt.Errorf("count individuals: %w", err)
	}
	if err := db.WithContext(ctx).Model(&person.LegalEntityRow{}).Count(&entities).Error; err != nil {
		return 0, fmt.Errorf("count legal entities: %w", err)
	}
	return individuals + entities, nil
}
