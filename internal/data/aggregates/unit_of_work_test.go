package aggregates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/data/aggregates/testutil"
	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
)

type touchRecorder struct {
	touched   []time.Time
	undone    int
	persisted int
}

func (r *touchRecorder) Touch(now time.Time) func() {
	r.touched = append(r.touched, now)
	return func() { r.undone++ }
}

func (r *touchRecorder) MarkPersisted() { r.persisted++ }

func newUoW(runner aggregates.TxRunner, hooks aggregates.Hooks, now time.Time) *aggregates.UnitOfWork {
	return aggregates.NewUnitOfWork(aggregates.BaseDeps{
		Runner: runner,
		Hooks:  hooks,
		Now:    func() time.Time { return now },
	}, "people.commit")
}

func TestUnitOfWork_CommitAppliesInOrderAndSumsRows(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	hooks := &testutil.HooksRecorder{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	uow := newUoW(runner, hooks, now)

	var order []string
	a, b := &touchRecorder{}, &touchRecorder{}
	uow.Stage(aggregates.Write{Op: "a", Entity: a, Apply: func(dbctx.Context) (int64, error) {
		order = append(order, "a")
		return 1, nil
	}})
	uow.Stage(aggregates.Write{Op: "b", Entity: b, Apply: func(dbctx.Context) (int64, error) {
		order = append(order, "b")
		return 2, nil
	}})
	if uow.Pending() != 2 {
		t.Fatalf("pending: want=2 got=%d", uow.Pending())
	}

	n, err := uow.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if n != 3 {
		t.Fatalf("rows: want=3 got=%d", n)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order: %v", order)
	}
	if len(a.touched) != 1 || !a.touched[0].Equal(now) || a.touched[0].Location() != time.UTC {
		t.Fatalf("touch a: %v", a.touched)
	}
	if !b.touched[0].Equal(a.touched[0]) {
		t.Fatalf("all entities share one commit time")
	}
	if a.persisted != 1 || b.persisted != 1 || a.undone != 0 {
		t.Fatalf("persisted a=%d b=%d undone=%d", a.persisted, b.persisted, a.undone)
	}
	if uow.Pending() != 0 {
		t.Fatalf("pending after commit: want=0 got=%d", uow.Pending())
	}
	if s := hooks.Statuses(); len(s) != 1 || s[0] != "committed" {
		t.Fatalf("hook statuses: %v", s)
	}
	if ev := hooks.Events()[0]; ev.Writes != 2 || ev.Rows != 3 || ev.Op != "people.commit" {
		t.Fatalf("commit event: %+v", ev)
	}
}

func TestUnitOfWork_EmptyCommitIsNoop(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	uow := newUoW(runner, nil, time.Now())
	n, err := uow.Commit(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("want=(0,nil) got=(%d,%v)", n, err)
	}
	if runner.BeginCalls != 0 {
		t.Fatalf("empty commit must not open a transaction")
	}
}

func TestUnitOfWork_ApplyErrorRollsBackAndKeepsPending(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	hooks := &testutil.HooksRecorder{}
	uow := newUoW(runner, hooks, time.Now())
	uow.Stage(aggregates.Write{Apply: func(dbctx.Context) (int64, error) {
		return 0, errors.New("UNIQUE constraint failed: individuals.cpf")
	}})

	_, err := uow.Commit(context.Background())
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
	if runner.RollbackCalls != 1 {
		t.Fatalf("rollbacks: want=1 got=%d", runner.RollbackCalls)
	}
	if uow.Pending() != 1 {
		t.Fatalf("pending must survive a failed commit")
	}
	if hooks.Count("conflict") != 1 {
		t.Fatalf("conflict hook not fired")
	}
}

func TestUnitOfWork_InjectedCommitFailure(t *testing.T) {
	runner := &testutil.InjectedTxRunner{FailCommit: errors.New("deadlock detected")}
	hooks := &testutil.HooksRecorder{}
	uow := newUoW(runner, hooks, time.Now())
	uow.Stage(aggregates.Write{Apply: func(dbctx.Context) (int64, error) { return 1, nil }})

	n, err := uow.Commit(context.Background())
	if n != 0 {
		t.Fatalf("rows on failure: want=0 got=%d", n)
	}
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("want retryable, got %v", err)
	}
	if hooks.Count("retryable") != 1 {
		t.Fatalf("retry hook not fired")
	}
}

func TestUnitOfWork_CancelledContext(t *testing.T) {
	runner := &testutil.InjectedTxRunner{}
	uow := newUoW(runner, nil, time.Now())
	uow.Stage(aggregates.Write{Apply: func(dbctx.Context) (int64, error) { return 1, nil }})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uow.Commit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if runner.BeginCalls != 0 {
		t.Fatalf("cancelled commit must not begin a transaction")
	}
}
