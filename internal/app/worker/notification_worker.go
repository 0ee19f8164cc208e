package worker

import (
	"context"
	"sync"
	"time"

	"coursework_tracker/internal/app/outbox"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

const defaultMaxInFlight = 8

// NotificationWorker drains the outbox and hands every request to the
// dispatcher. Each send gets its own timeout, failures are logged and the
// request is not retried: the runner callback is the only reconciliation.
type NotificationWorker struct {
	outbox      *outbox.Outbox
	dispatcher  outbox.Dispatcher
	sendTimeout time.Duration
	sem         chan struct{}
	wg          sync.WaitGroup
	logger      *zap.SugaredLogger
}

func NewNotificationWorker(box *outbox.Outbox, dispatcher outbox.Dispatcher, sendTimeout time.Duration) *NotificationWorker {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &NotificationWorker{
		outbox:      box,
		dispatcher:  dispatcher,
		sendTimeout: sendTimeout,
		sem:         make(chan struct{}, defaultMaxInFlight),
		logger:      logger.NewNamedLogger("notifier"),
	}
}

// Start blocks until ctx is cancelled, then waits for in-flight sends.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info("Notification worker started")
	defer w.logger.Info("Notification worker stopped")
	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return
		case req := <-w.outbox.Pending():
			select {
			case w.sem <- struct{}{}:
			case <-ctx.Done():
				w.logger.Warnf("Shutting down, submission %d was not dispatched", req.SubmissionID)
				w.wg.Wait()
				return
			}
			w.wg.Add(1)
			go func(req outbox.RunRequest) {
				defer w.wg.Done()
				defer func() { <-w.sem }()
				w.send(ctx, req)
			}(req)
		}
	}
}

func (w *NotificationWorker) send(ctx context.Context, req outbox.RunRequest) {
	// In-flight sends finish on their own timeout even during shutdown.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.sendTimeout)
	defer cancel()

	if err := w.dispatcher.Dispatch(sendCtx, req); err != nil {
		w.logger.Errorf("Failed to notify runner for submission %d: %v", req.SubmissionID, err)
		return
	}
	w.logger.Infof("Runner notified for submission %d (assignment %d)", req.SubmissionID, req.AssignmentID)
}
