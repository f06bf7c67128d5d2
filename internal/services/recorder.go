package services

import (
	"context"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
)

// recorder writes audit entries on behalf of the signed-in user. A failing
// audit store never fails the action itself.
type recorder struct {
	store  audit.Recorder
	logger logging.Logger
}

func newRecorder(store audit.Recorder, logger logging.Logger) recorder {
	if store == nil {
		store = audit.Noop{}
	}
	return recorder{store: store, logger: logger}
}

func (r recorder) record(ctx context.Context, action, target, detail string) {
	err := r.store.Record(ctx, audit.Entry{
		Actor:     client.Email(ctx),
		Action:    action,
		Target:    target,
		Detail:    detail,
		RequestID: logging.RequestID(ctx),
	})
	if err != nil {
		r.logger.Warn(ctx, "audit record failed", "action", action, "error", err)
	}
}
