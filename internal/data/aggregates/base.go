package aggregates

import (
	"strings"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

const statusCommitted = "committed"

// BaseDeps are shared by every unit of work. Zero fields get defaults:
// a gorm runner over DB, a logging hook when Log is set, and time.Now.
type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
	Now    func() time.Time
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	switch {
	case d.Hooks == nil && d.Log != nil:
		d.Hooks = NewLoggingHooks(d.Log)
	case d.Hooks == nil:
		d.Hooks = noopHooks{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// commitStatus is the metric/log label for a commit outcome.
func commitStatus(err error) string {
	if err == nil {
		return statusCommitted
	}
	if code := strings.TrimSpace(string(domainagg.CodeOf(err))); code != "" {
		return code
	}
	return "failure"
}
