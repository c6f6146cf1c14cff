package testutil

import (
	"sync"

	"github.com/yungbote/people-backend/internal/data/aggregates"
)

// HooksRecorder keeps every commit event for assertions.
type HooksRecorder struct {
	mu     sync.Mutex
	events []aggregates.CommitEvent
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) CommitObserved(ev aggregates.CommitEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *HooksRecorder) Events() []aggregates.CommitEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]aggregates.CommitEvent(nil), h.events...)
}

// Statuses returns the recorded commit statuses in order.
func (h *HooksRecorder) Statuses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, ev := range h.events {
		out = append(out, ev.Status)
	}
	return out
}

// Count returns how many commits ended with status.
func (h *HooksRecorder) Count(status string) int {
	n := 0
	for _, s := range h.Statuses() {
		if s == status {
			n++
		}
	}
	return n
}
