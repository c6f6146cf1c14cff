package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/data/repos/testutil"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
)

func TestGormTxRunner_CancelDuringBodyRollsBack(t *testing.T) {
	db := testutil.DB(t)
	runner := aggregates.NewGormTxRunner(db)
	ctx, cancel := context.WithCancel(context.Background())

	err := runner.InTx(ctx, func(dbc dbctx.Context) error {
		if err := dbc.Tx.Create(&audit.Event{ID: uuid.New(), Action: "people.create", EntityType: "individual"}).Error; err != nil {
			return err
		}
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	var n int64
	if err := db.Model(&audit.Event{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows after rollback: want=0 got=%d", n)
	}
}

func TestGormTxRunner_CommitsAndSkipsCancelledContext(t *testing.T) {
	db := testutil.DB(t)
	runner := aggregates.NewGormTxRunner(db)

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		return dbc.Tx.Create(&audit.Event{ID: uuid.New(), Action: "people.create", EntityType: "individual"}).Error
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = runner.InTx(ctx, func(dbctx.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("cancelled ctx: err=%v called=%v", err, called)
	}

	var n int64
	if err := db.Model(&audit.Event{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows: want=1 got=%d", n)
	}
}
