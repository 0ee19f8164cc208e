package outbox

import (
	"context"

	"go.uber.org/zap"
)

// LogDispatcher only records the request. Used when no runner is configured.
type LogDispatcher struct {
	logger *zap.SugaredLogger
}

func NewLogDispatcher(logger *zap.SugaredLogger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(_ context.Context, req RunRequest) error {
	d.logger.Infof("Runner disabled, not dispatching submission %d (assignment %d, file %s)",
		req.SubmissionID, req.AssignmentID, req.Filename)
	return nil
}
