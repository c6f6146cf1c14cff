package person

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

const DefaultSearchLimit = 50

type ReadRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (people.Person, bool, error)
	SearchByName(dbc dbctx.Context, query string, limit int) ([]people.Person, error)
}

type readRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadRepo(db *gorm.DB, baseLog *logger.Logger) ReadRepo {
	return &readRepo{db: db, log: baseLog.With("repo", "PersonReadRepo")}
}

// GetByID looks in individuals first, then legal entities. A miss is
// reported through found, never as an error.
func (r *readRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (people.Person, bool, error) {
	var ind IndividualRow
	err := dbc.DB(r.db).Where("id = ?", id).Take(&ind).Error
	if err == nil {
		return ind.toDomain(), true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var le LegalEntityRow
	err = dbc.DB(r.db).Where("id = ?", id).Take(&le).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return le.toDomain(), true, nil
}

// SearchByName matches the trimmed query as a case-insensitive substring of
// an individual's full name or an entity's corporate or trade name.
// Individuals come first; each kind is ordered by name then id.
func (r *readRepo) SearchByName(dbc dbctx.Context, query string, limit int) ([]people.Person, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []people.Person{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + escapeLike(searchKey(query)) + "%"

	var (
		individuals []IndividualRow
		entities    []LegalEntityRow
	)
	findIndividuals := func() error {
		return dbc.DB(r.db).
			Where(`name_key LIKE ? ESCAPE '\'`, pattern).
			Order("full_name ASC, id ASC").
			Limit(limit).
			Find(&individuals).Error
	}
	findEntities := func() error {
		return dbc.DB(r.db).
			Where(`corporate_name_key LIKE ? ESCAPE '\' OR trade_name_key LIKE ? ESCAPE '\'`, pattern, pattern).
			Order("corporate_name ASC, id ASC").
			Limit(limit).
			Find(&entities).Error
	}

	if dbc.Tx != nil {
		// A transaction handle must not be shared across goroutines.
		if err := findIndividuals(); err != nil {
			return nil, err
		}
		if err := findEntities(); err != nil {
			return nil, err
		}
	} else {
		g := new(errgroup.Group)
		g.Go(findIndividuals)
		g.Go(findEntities)
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make([]people.Person, 0, min(limit, len(individuals)+len(entities)))
	for i := range individuals {
		if len(out) == limit {
			return out, nil
		}
		out = append(out, individuals[i].toDomain())
	}
	for i := range entities {
		if len(out) == limit {
			break
		}
		out = append(out, entities[i].toDomain())
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
