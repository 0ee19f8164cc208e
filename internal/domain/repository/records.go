package repository

import (
	"context"
	"sync"

	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

// DocumentSaver is the persistence side of the DurableStore.
type DocumentSaver interface {
	Save(ctx context.Context, doc *model.Document) error
}

// Records owns the in-memory document. Every operation holds the same mutex
// for its whole duration, including the synchronous persist, so operations
// never interleave.
type Records struct {
	mu     sync.Mutex
	doc    *model.Document
	saver  DocumentSaver
	logger *zap.SugaredLogger
}

func NewRecords(doc *model.Document, saver DocumentSaver) *Records {
	if doc == nil {
		doc = DefaultDocument()
	}
	return &Records{
		doc:    doc,
		saver:  saver,
		logger: logger.NewNamedLogger("records"),
	}
}

// Update runs fn against the document and persists it when fn succeeds.
// fn must leave the document untouched when it returns an error. A failed
// persist is logged and does not undo the in-memory change.
func (r *Records) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(r.doc); err != nil {
		return err
	}
	// The mutation already happened; a cancelled request must not skip the flush.
	if err := r.saver.Save(context.WithoutCancel(ctx), r.doc); err != nil {
		r.logger.Errorf("Persist failed, in-memory state is ahead of storage: %v", err)
	}
	return nil
}

// View runs fn with read access to the document. fn must not mutate it or
// retain references past its return.
func (r *Records) View(fn func(doc *model.Document)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.doc)
}

// Flush persists the current document, e.g. on shutdown.
func (r *Records) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saver.Save(ctx, r.doc)
}
