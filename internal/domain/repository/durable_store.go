package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

type LoadOutcome string

const (
	LoadOutcomeLoaded    LoadOutcome = "loaded"
	LoadOutcomeSeeded    LoadOutcome = "seeded"
	LoadOutcomeRecovered LoadOutcome = "recovered" // stored document was unreadable and replaced
)

// DurableStore maps the record graph to and from a Backend.
type DurableStore struct {
	backend Backend
	logger  *zap.SugaredLogger
}

func NewDurableStore(backend Backend) *DurableStore {
	return &DurableStore{
		backend: backend,
		logger:  logger.NewNamedLogger("store"),
	}
}

// Load reads the stored document. A missing document is seeded and
// persisted. A document that cannot be decoded is quarantined (when the
// backend supports it), reported at error level and replaced by a freshly
// seeded document. Any other read error is returned and nothing is written.
func (s *DurableStore) Load(ctx context.Context) (*model.Document, LoadOutcome, error) {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNoDocument) {
		doc := DefaultDocument()
		if err := s.Save(ctx, doc); err != nil {
			s.logger.Errorf("Failed to persist seeded document: %v", err)
		}
		s.logger.Info("No stored document found, seeded defaults")
		return doc, LoadOutcomeSeeded, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading document: %w", err)
	}

	doc, err := Decode(data)
	if err == nil {
		return doc, LoadOutcomeLoaded, nil
	}

	s.logger.Errorf("STORED DOCUMENT UNREADABLE, falling back to seeded defaults: %v", err)
	if q, ok := s.backend.(Quarantiner); ok && len(data) > 0 {
		if where, qErr := q.Quarantine(ctx, data); qErr != nil {
			s.logger.Errorf("Failed to quarantine unreadable document: %v", qErr)
		} else {
			s.logger.Errorf("Unreadable document preserved at %s", where)
		}
	}
	doc = DefaultDocument()
	if err := s.Save(ctx, doc); err != nil {
		s.logger.Errorf("Failed to persist seeded document: %v", err)
	}
	return doc, LoadOutcomeRecovered, nil
}

func (s *DurableStore) Save(ctx context.Context, doc *model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

func (s *DurableStore) Close() error {
	return s.backend.Close()
}

func Encode(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.Assignments == nil {
		doc.Assignments = []model.Assignment{}
	}
	if doc.Submissions == nil {
		doc.Submissions = []model.Submission{}
	}
	if doc.Results == nil {
		doc.Results = []model.Result{}
	}
	return &doc, nil
}
