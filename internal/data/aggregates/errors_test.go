package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	_, validationErr := people.NewCpf("123")
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation", validationErr, domainagg.CodeValidation},
		{"gorm duplicated key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), domainagg.CodeConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: individuals.cpf"), domainagg.CodeConflict},
		{"sqlite locked", errors.New("database is locked"), domainagg.CodeRetryable},
		{"record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"canceled", context.Canceled, domainagg.CodeRetryable},
		{"unknown", errors.New("disk on fire"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("people.commit", tc.err)
			if code := domainagg.CodeOf(got); code != tc.want {
				t.Fatalf("code: want=%s got=%s (%v)", tc.want, code, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("mapped error must wrap cause")
			}
		})
	}
}

func TestMapError_ConflictColumn(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("UNIQUE constraint failed: individuals.cpf"), "cpf"},
		{&pgconn.PgError{Code: "23505", ConstraintName: "idx_legal_entities_cnpj"}, "cnpj"},
		{&pgconn.PgError{Code: "23505", ColumnName: "cpf"}, "cpf"},
		{fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), ""},
	}
	for _, tc := range cases {
		got := MapError("people.commit", tc.err)
		if !domainagg.IsCode(got, domainagg.CodeConflict) {
			t.Fatalf("%v: want conflict, got %v", tc.err, got)
		}
		if field := domainagg.FieldOf(got); field != tc.want {
			t.Fatalf("%v: field want=%q got=%q", tc.err, tc.want, field)
		}
	}
}

func TestMapError_ValidationKeepsField(t *testing.T) {
	_, err := people.NewCnpj("11222333000182")
	if got := domainagg.FieldOf(MapError("people.commit", err)); got != "cnpj" {
		t.Fatalf("field: want=cnpj got=%q", got)
	}
}

func TestMapError_KeepsAggregateErrors(t *testing.T) {
	orig := domainagg.NotFound("people.attach_photo", "individual not found")
	if got := MapError("people.commit", orig); got != orig {
		t.Fatalf("want original error back, got %v", got)
	}
	if MapError("x", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}

func TestCommitStatus(t *testing.T) {
	if got := commitStatus(nil); got != statusCommitted {
		t.Fatalf("status: want=%s got=%s", statusCommitted, got)
	}
	if got := commitStatus(domainagg.Conflict("op", "", "dup", nil)); got != "conflict" {
		t.Fatalf("status: want=conflict got=%s", got)
	}
	if got := commitStatus(errors.New("plain")); got != "failure" {
		t.Fatalf("status: want=failure got=%s", got)
	}
}
