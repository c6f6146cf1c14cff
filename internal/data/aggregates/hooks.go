package aggregates

import (
	"time"

	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

// CommitEvent describes one finished unit-of-work commit.
type CommitEvent struct {
	Op       string
	Writes   int
	Rows     int64
	Status   string
	Duration time.Duration
	Err      error
}

// Hooks observes commits. Implementations must not block.
type Hooks interface {
	CommitObserved(ev CommitEvent)
}

type noopHooks struct{}

func (noopHooks) CommitObserved(CommitEvent) {}

type multiHooks []Hooks

func (m multiHooks) CommitObserved(ev CommitEvent) {
	for _, h := range m {
		h.CommitObserved(ev)
	}
}

// MultiHooks fans every event out to each non-nil hook.
func MultiHooks(hooks ...Hooks) Hooks {
	var out multiHooks
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		return noopHooks{}
	}
	return out
}

type metricsHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks records commit latency, conflicts and transient
// failures in Prometheus.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &metricsHooks{metrics: metrics}
}

func (h *metricsHooks) CommitObserved(ev CommitEvent) {
	h.metrics.ObserveAggregateOperation(ev.Op, ev.Status, ev.Duration)
	switch ev.Status {
	case string(domainagg.CodeConflict):
		h.metrics.IncAggregateConflict(ev.Op)
	case string(domainagg.CodeRetryable):
		h.metrics.IncAggregateRetry(ev.Op)
	}
}

type logHooks struct {
	log *logger.Logger
}

func NewLoggingHooks(log *logger.Logger) Hooks {
	if log == nil {
		return noopHooks{}
	}
	return &logHooks{log: log.With("component", "UnitOfWork")}
}

func (h *logHooks) CommitObserved(ev CommitEvent) {
	kv := []interface{}{
		"op", ev.Op,
		"writes", ev.Writes,
		"rows", ev.Rows,
		"status", ev.Status,
		"duration_ms", ev.Duration.Milliseconds(),
	}
	switch ev.Status {
	case statusCommitted:
		h.log.Debug("commit", kv...)
	case string(domainagg.CodeConflict), string(domainagg.CodeValidation), string(domainagg.CodeNotFound):
		h.log.Info("commit rejected", append(kv, "error", ev.Err)...)
	default:
		h.log.Warn("commit failed", append(kv, "error", ev.Err)...)
	}
}
