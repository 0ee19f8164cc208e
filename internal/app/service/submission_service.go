package service

import (
	"context"
	"sort"
	"time"

	"coursework_tracker/internal/app/outbox"
	"coursework_tracker/internal/common"
	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

// ArtifactStorage keeps uploaded submission archives under unique names.
type ArtifactStorage interface {
	Save(originalName string, data []byte) (string, error)
}

// Notifier queues a runner notification without blocking.
type Notifier interface {
	Enqueue(req outbox.RunRequest) bool
}

type SubmissionService struct {
	records   *repository.Records
	artifacts ArtifactStorage
	notifier  Notifier
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewSubmissionService(records *repository.Records, artifacts ArtifactStorage, notifier Notifier) *SubmissionService {
	return &SubmissionService{
		records:   records,
		artifacts: artifacts,
		notifier:  notifier,
		now:       utcNow,
		logger:    logger.NewNamedLogger("ledger"),
	}
}

type SubmitRequest struct {
	AssignmentID int
	OriginalName string
	Artifact     []byte
}

// Submit stores the artifact, records a queued submission and hands it to
// the runner outbox. The quota check and the append happen under one lock.
func (s *SubmissionService) Submit(ctx context.Context, actor model.Actor, req SubmitRequest) (*model.Submission, error) {
	if actor.Role != model.RoleStudent {
		return nil, common.Errorf("only students can submit: %w", common.ErrForbidden)
	}

	var created model.Submission
	err := s.records.Update(ctx, func(doc *model.Document) error {
		if _, ok := doc.FindUser(actor.UserID); !ok {
			return common.Errorf("user %d: %w", actor.UserID, common.ErrNotFound)
		}
		if _, ok := doc.FindAssignment(req.AssignmentID); !ok {
			return common.Errorf("assignment %d: %w", req.AssignmentID, common.ErrNotFound)
		}
		if doc.CountSubmissions(actor.UserID, req.AssignmentID) >= model.MaxSubmissionsPerAssignment {
			return common.Errorf("at most %d submissions per assignment: %w", model.MaxSubmissionsPerAssignment, common.ErrQuotaExceeded)
		}
		if len(req.Artifact) == 0 {
			return common.Errorf("a submission file is required: %w", common.ErrValidation)
		}

		filename, err := s.artifacts.Save(req.OriginalName, req.Artifact)
		if err != nil {
			return common.Errorf("storing artifact: %v: %w", err, common.ErrIO)
		}
		created = model.Submission{
			ID:           repository.NextSubmissionID(doc),
			UserID:       actor.UserID,
			AssignmentID: req.AssignmentID,
			Filename:     filename,
			Status:       model.StatusQueued,
			CreatedAt:    s.now(),
		}
		doc.Submissions = append(doc.Submissions, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Submission %d queued for assignment %d by user %d", created.ID, created.AssignmentID, created.UserID)
	s.notifier.Enqueue(outbox.RunRequest{
		SubmissionID: created.ID,
		AssignmentID: created.AssignmentID,
		Filename:     created.Filename,
	})
	return &created, nil
}

// ListForUser returns the user's submissions newest first, joined with the
// assignment title and latest result.
func (s *SubmissionService) ListForUser(ctx context.Context, userID int) []model.SubmissionView {
	var out []model.SubmissionView
	s.records.View(func(doc *model.Document) {
		out = buildViews(doc, func(sub model.Submission) bool { return sub.UserID == userID }, false)
	})
	return out
}

// ListAll returns every submission newest first, additionally joined with
// the submitter's email.
func (s *SubmissionService) ListAll(ctx context.Context) []model.SubmissionView {
	var out []model.SubmissionView
	s.records.View(func(doc *model.Document) {
		out = buildViews(doc, func(model.Submission) bool { return true }, true)
	})
	return out
}

func (s *SubmissionService) GetByID(ctx context.Context, id int) (*model.SubmissionDetail, error) {
	var detail *model.SubmissionDetail
	s.records.View(func(doc *model.Document) {
		i, ok := doc.FindSubmission(id)
		if !ok {
			return
		}
		detail = &model.SubmissionDetail{Submission: doc.Submissions[i]}
		if res, ok := doc.LatestResult(id); ok {
			detail.Result = res
		}
	})
	if detail == nil {
		return nil, common.Errorf("submission %d: %w", id, common.ErrNotFound)
	}
	return detail, nil
}

func buildViews(doc *model.Document, keep func(model.Submission) bool, withEmail bool) []model.SubmissionView {
	views := make([]model.SubmissionView, 0)
	for _, sub := range doc.Submissions {
		if !keep(sub) {
			continue
		}
		view := model.SubmissionView{Submission: sub}
		if i, ok := doc.FindAssignment(sub.AssignmentID); ok {
			title := doc.Assignments[i].Title
			view.AssignmentTitle = &title
		}
		if withEmail {
			if i, ok := doc.FindUser(sub.UserID); ok {
				email := doc.Users[i].Email
				view.UserEmail = &email
			}
		}
		if res, ok := doc.LatestResult(sub.ID); ok {
			view.Score = &res.Score
			view.TotalTests = &res.TotalTests
			view.PassedTests = &res.PassedTests
			view.Feedback = &res.Feedback
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(a, b int) bool {
		if !views[a].CreatedAt.Equal(views[b].CreatedAt) {
			return views[a].CreatedAt.After(views[b].CreatedAt)
		}
		return views[a].ID > views[b].ID
	})
	return views
}
