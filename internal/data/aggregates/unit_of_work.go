package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/people-backend/internal/platform/dbctx"
)

// Touchable is stamped with the commit time before its write is applied.
// The stamp is undone if the commit fails; MarkPersisted runs only after
// a successful commit.
type Touchable interface {
	Touch(now time.Time) (undo func())
	MarkPersisted()
}

// Write is one staged change. Apply runs inside the commit transaction and
// returns the number of rows it affected.
type Write struct {
	Op     string
	Entity Touchable
	Apply  func(dbc dbctx.Context) (int64, error)
}

// UnitOfWork collects staged writes and makes them durable in one
// transaction. It belongs to a single operation and is not safe for
// concurrent use.
type UnitOfWork struct {
	deps    BaseDeps
	op      string
	pending []Write
}

func NewUnitOfWork(deps BaseDeps, op string) *UnitOfWork {
	if op = strings.TrimSpace(op); op == "" {
		op = "unit_of_work.commit"
	}
	return &UnitOfWork{deps: deps.withDefaults(), op: op}
}

func (u *UnitOfWork) Stage(w Write) {
	u.pending = append(u.pending, w)
}

func (u *UnitOfWork) Pending() int { return len(u.pending) }

// Commit touches every staged entity with one timestamp, applies the writes
// in staging order and returns the total affected rows. Nothing is visible
// unless every write succeeds. On failure the staged writes are kept and
// every entity gets its previous timestamps back.
func (u *UnitOfWork) Commit(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, MapError(u.op, err)
	}
	start := time.Now()
	now := u.deps.Now().UTC()
	undo := make([]func(), 0, len(u.pending))
	for _, w := range u.pending {
		if w.Entity != nil {
			undo = append(undo, w.Entity.Touch(now))
		}
	}

	var affected int64
	err := u.deps.Runner.InTx(ctx, func(dbc dbctx.Context) error {
		affected = 0
		for _, w := range u.pending {
			if w.Apply == nil {
				continue
			}
			n, err := w.Apply(dbc)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	err = MapError(u.op, err)
	if err != nil {
		affected = 0
	}
	u.deps.Hooks.CommitObserved(CommitEvent{
		Op:       u.op,
		Writes:   len(u.pending),
		Rows:     affected,
		Status:   commitStatus(err),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		for i := len(undo) - 1; i >= 0; i-- {
			if undo[i] != nil {
				undo[i]()
			}
		}
		return 0, err
	}
	for _, w := range u.pending {
		if w.Entity != nil {
			w.Entity.MarkPersisted()
		}
	}
	u.pending = nil
	return affected, nil
}
