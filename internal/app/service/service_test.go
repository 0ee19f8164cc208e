package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"coursework_tracker/internal/app/outbox"
	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/platform/storage"

	"github.com/stretchr/testify/require"
)

var (
	teacher = model.Actor{UserID: 2, Role: model.RoleTeacher}
	student = model.Actor{UserID: 1, Role: model.RoleStudent}
)

type countingSaver struct {
	mu    sync.Mutex
	saves int
}

func (s *countingSaver) Save(context.Context, *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

func (s *countingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []outbox.RunRequest
}

func (n *recordingNotifier) Enqueue(req outbox.RunRequest) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
	return true
}

type fixture struct {
	records     *repository.Records
	saver       *countingSaver
	fixtures    *storage.FixtureStore
	notifier    *recordingNotifier
	catalog     *AssignmentService
	ledger      *SubmissionService
	results     *WebhookService
	query       *QueryService
	auth        *AuthService
	languages   *LanguageService
	artifactDir string
}

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newFixture(t *testing.T, doc *model.Document) *fixture {
	t.Helper()
	if doc == nil {
		doc = repository.DefaultDocument()
	}
	f := &fixture{saver: &countingSaver{}, notifier: &recordingNotifier{}, artifactDir: t.TempDir()}
	f.records = repository.NewRecords(doc, f.saver)

	var err error
	f.fixtures, err = storage.NewFixtureStore(t.TempDir())
	require.NoError(t, err)
	artifacts, err := storage.NewArtifactStore(f.artifactDir)
	require.NoError(t, err)

	clock := steppingClock()
	f.languages = NewLanguageService()
	f.catalog = NewAssignmentService(f.records, f.fixtures, f.languages)
	f.catalog.now = clock
	f.ledger = NewSubmissionService(f.records, artifacts, f.notifier)
	f.ledger.now = clock
	f.results = NewWebhookService(f.records)
	f.results.now = clock
	f.query = NewQueryService(f.catalog, f.ledger)
	f.auth = NewAuthService(f.records)
	return f
}

func (f *fixture) document(t *testing.T) model.Document {
	t.Helper()
	var snapshot model.Document
	f.records.View(func(doc *model.Document) {
		snapshot = model.Document{
			Users:       append([]model.User{}, doc.Users...),
			Assignments: append([]model.Assignment{}, doc.Assignments...),
			Submissions: append([]model.Submission{}, doc.Submissions...),
			Results:     append([]model.Result{}, doc.Results...),
		}
	})
	return snapshot
}
