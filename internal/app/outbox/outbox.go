package outbox

import (
	"context"

	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

// RunRequest is the one-shot notification sent to the grading runner.
type RunRequest struct {
	SubmissionID int    `json:"submissionId"`
	AssignmentID int    `json:"assignmentId"`
	Filename     string `json:"filename"`
}

//go:generate mockgen -destination=mocks/dispatcher_mock.go -package=mocks coursework_tracker/internal/app/outbox Dispatcher

// Dispatcher delivers a RunRequest over some transport. Delivery is best
// effort: callers log the error and move on.
type Dispatcher interface {
	Dispatch(ctx context.Context, req RunRequest) error
}

// Outbox is a bounded queue of pending runner notifications. Enqueue never
// blocks; when the queue is full the notification is dropped and logged.
type Outbox struct {
	ch     chan RunRequest
	logger *zap.SugaredLogger
}

func New(size int) *Outbox {
	if size <= 0 {
		size = 1
	}
	return &Outbox{
		ch:     make(chan RunRequest, size),
		logger: logger.NewNamedLogger("outbox"),
	}
}

func (o *Outbox) Enqueue(req RunRequest) bool {
	select {
	case o.ch <- req:
		return true
	default:
		o.logger.Errorf("Outbox full, dropping runner notification for submission %d", req.SubmissionID)
		return false
	}
}

// Pending exposes the queue to the notification worker.
func (o *Outbox) Pending() <-chan RunRequest {
	return o.ch
}

func (o *Outbox) Len() int {
	return len(o.ch)
}
