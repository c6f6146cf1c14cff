package aggregates

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
)

// pg SQLSTATE classes that a retry can resolve.
var retryablePgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

const pgUniqueViolation = "23505"

var (
	conflictFragments  = []string{"duplicate key", "unique constraint", "already exists"}
	retryableFragments = []string{"deadlock", "serialization", "database is locked"}

	// "UNIQUE constraint failed: individuals.cpf" (sqlite)
	sqliteUniqueColumn = regexp.MustCompile(`(?i)unique constraint failed: [a-z_]+\.([a-z_]+)`)
	// "idx_individuals_cpf" (our unique index names)
	uniqueIndexColumn = regexp.MustCompile(`^idx_(?:individuals|legal_entities)_([a-z_]+)$`)
)

// MapError classifies an infrastructure or domain failure into an aggregate
// error. Errors that already carry a code pass through untouched.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if domainagg.CodeOf(err) != "" {
		return err
	}
	if vErr, ok := people.AsValidationError(err); ok {
		return &domainagg.Error{Code: domainagg.CodeValidation, Op: op, Field: vErr.Field, Message: err.Error(), Cause: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	}
	if isUniqueViolation(err) {
		return domainagg.Conflict(op, ConflictColumn(err), err.Error(), err)
	}
	if isRetryable(err) {
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}
	return domainagg.Wrap(domainagg.CodeInternal, op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return containsAny(err.Error(), conflictFragments)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && retryablePgCodes[pgErr.Code] {
		return true
	}
	return containsAny(err.Error(), retryableFragments)
}

// ConflictColumn names the column behind a unique violation when the driver
// reports it, or "".
func ConflictColumn(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.ColumnName != "" {
			return pgErr.ColumnName
		}
		if m := uniqueIndexColumn.FindStringSubmatch(pgErr.ConstraintName); m != nil {
			return m[1]
		}
	}
	if err == nil {
		return ""
	}
	if m := sqliteUniqueColumn.FindStringSubmatch(err.Error()); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

func containsAny(msg string, fragments []string) bool {
	msg = strings.ToLower(msg)
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
