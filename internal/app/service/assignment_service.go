package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"coursework_tracker/internal/common"
	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/logger"
	"coursework_tracker/internal/platform/storage"

	"go.uber.org/zap"
)

// FixtureStorage places and removes the per-assignment fixture directory.
type FixtureStorage interface {
	Create(assignmentSlug, fileName string, data []byte) (string, error)
	Remove(assignmentSlug string) error
}

type AssignmentService struct {
	records   *repository.Records
	fixtures  FixtureStorage
	languages *LanguageService
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewAssignmentService(records *repository.Records, fixtures FixtureStorage, languages *LanguageService) *AssignmentService {
	return &AssignmentService{
		records:   records,
		fixtures:  fixtures,
		languages: languages,
		now:       utcNow,
		logger:    logger.NewNamedLogger("catalog"),
	}
}

type FixtureUpload struct {
	Name string
	Data []byte
}

type CreateAssignmentRequest struct {
	Title       string
	Slug        string
	Description string
	Details     []string
	Fixture     *FixtureUpload
}

type UpdateAssignmentRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Details     *[]string `json:"details,omitempty"`
}

// List returns every assignment in insertion order.
func (s *AssignmentService) List(ctx context.Context) []model.Assignment {
	var out []model.Assignment
	s.records.View(func(doc *model.Document) {
		out = make([]model.Assignment, 0, len(doc.Assignments))
		for _, a := range doc.Assignments {
			out = append(out, copyAssignment(a))
		}
	})
	return out
}

func (s *AssignmentService) Get(ctx context.Context, id int) (*model.Assignment, error) {
	var found *model.Assignment
	s.records.View(func(doc *model.Document) {
		if i, ok := doc.FindAssignment(id); ok {
			a := copyAssignment(doc.Assignments[i])
			found = &a
		}
	})
	if found == nil {
		return nil, common.Errorf("assignment %d: %w", id, common.ErrNotFound)
	}
	return found, nil
}

// Create adds a custom assignment and writes its fixture under a directory
// named after the sanitized slug.
func (s *AssignmentService) Create(ctx context.Context, actor model.Actor, req CreateAssignmentRequest) (*model.Assignment, error) {
	if !actor.IsTeacher() {
		return nil, common.Errorf("only teachers can create assignments: %w", common.ErrForbidden)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, common.Errorf("title is required: %w", common.ErrValidation)
	}
	if strings.TrimSpace(req.Slug) == "" {
		return nil, common.Errorf("slug is required: %w", common.ErrValidation)
	}
	assignmentSlug := common.SanitizeSlug(req.Slug)
	if assignmentSlug == "" {
		return nil, common.Errorf("slug %q has no usable characters: %w", req.Slug, common.ErrValidation)
	}
	if req.Fixture == nil || len(req.Fixture.Data) == 0 {
		return nil, common.Errorf("a fixture file is required: %w", common.ErrValidation)
	}
	fixtureName := common.SanitizeFixtureName(req.Fixture.Name, s.languages.FixtureExtensions(), s.languages.DefaultExtension())

	var created model.Assignment
	err := s.records.Update(ctx, func(doc *model.Document) error {
		if _, taken := doc.FindAssignmentBySlug(assignmentSlug); taken {
			return common.Errorf("assignment slug %q already exists: %w", assignmentSlug, common.ErrConflict)
		}
		path, err := s.fixtures.Create(assignmentSlug, fixtureName, req.Fixture.Data)
		if err != nil {
			if errors.Is(err, storage.ErrFixtureDirExists) {
				return common.Errorf("fixture directory for %q already exists: %w", assignmentSlug, common.ErrConflict)
			}
			return common.Errorf("writing fixture for %q: %v: %w", assignmentSlug, err, common.ErrIO)
		}

		creator := actor.UserID
		createdAt := s.now()
		details := append([]string{}, req.Details...)
		created = model.Assignment{
			ID:          repository.NextAssignmentID(doc),
			Title:       title,
			Slug:        assignmentSlug,
			Description: req.Description,
			Details:     details,
			Origin:      model.OriginCustom,
			CreatorID:   &creator,
			CreatedAt:   &createdAt,
		}
		doc.Assignments = append(doc.Assignments, created)
		s.logger.Infof("Assignment %d (%s) created by user %d, fixture at %s", created.ID, created.Slug, creator, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := copyAssignment(created)
	return &out, nil
}

// Update applies only the fields present in req.
func (s *AssignmentService) Update(ctx context.Context, actor model.Actor, id int, req UpdateAssignmentRequest) (*model.Assignment, error) {
	if !actor.IsTeacher() {
		return nil, common.Errorf("only teachers can edit assignments: %w", common.ErrForbidden)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, common.Errorf("title cannot be empty: %w", common.ErrValidation)
	}

	var updated model.Assignment
	err := s.records.Update(ctx, func(doc *model.Document) error {
		i, ok := doc.FindAssignment(id)
		if !ok {
			return common.Errorf("assignment %d: %w", id, common.ErrNotFound)
		}
		a := &doc.Assignments[i]
		if req.Title != nil {
			a.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			a.Description = *req.Description
		}
		if req.Details != nil {
			a.Details = append([]string{}, (*req.Details)...)
		}
		updated = copyAssignment(*a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the record and, for custom assignments, its fixture
// directory. Directory removal is best effort.
func (s *AssignmentService) Delete(ctx context.Context, actor model.Actor, id int) error {
	if !actor.IsTeacher() {
		return common.Errorf("only teachers can delete assignments: %w", common.ErrForbidden)
	}
	return s.records.Update(ctx, func(doc *model.Document) error {
		i, ok := doc.FindAssignment(id)
		if !ok {
			return common.Errorf("assignment %d: %w", id, common.ErrNotFound)
		}
		removed := doc.Assignments[i]
		doc.Assignments = append(doc.Assignments[:i], doc.Assignments[i+1:]...)

		if removed.IsCustom() {
			if err := s.fixtures.Remove(removed.Slug); err != nil {
				s.logger.Errorf("Assignment %d deleted but fixture directory %q was not removed: %v", removed.ID, removed.Slug, err)
			}
		}
		s.logger.Infof("Assignment %d (%s) deleted by user %d", removed.ID, removed.Slug, actor.UserID)
		return nil
	})
}

func copyAssignment(a model.Assignment) model.Assignment {
	if a.Details != nil {
		a.Details = append([]string{}, a.Details...)
	}
	if a.CreatorID != nil {
		v := *a.CreatorID
		a.CreatorID = &v
	}
	if a.CreatedAt != nil {
		v := *a.CreatedAt
		a.CreatedAt = &v
	}
	return a
}

func utcNow() time.Time {
	return time.Now().UTC()
}
