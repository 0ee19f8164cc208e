package service

import (
	"context"

	"coursework_tracker/internal/common"
	"coursework_tracker/internal/domain/model"
)

// QueryService picks the read projection that fits the caller's role.
type QueryService struct {
	assignments *AssignmentService
	submissions *SubmissionService
}

func NewQueryService(assignments *AssignmentService, submissions *SubmissionService) *QueryService {
	return &QueryService{assignments: assignments, submissions: submissions}
}

func (s *QueryService) Assignments(ctx context.Context) []model.Assignment {
	return s.assignments.List(ctx)
}

// Submissions returns every submission to teachers and only their own to students.
func (s *QueryService) Submissions(ctx context.Context, actor model.Actor) []model.SubmissionView {
	if actor.IsTeacher() {
		return s.submissions.ListAll(ctx)
	}
	return s.submissions.ListForUser(ctx, actor.UserID)
}

// Submission hides other students' submissions behind ErrNotFound.
func (s *QueryService) Submission(ctx context.Context, actor model.Actor, id int) (*model.SubmissionDetail, error) {
	detail, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsTeacher() && detail.Submission.UserID != actor.UserID {
		return nil, common.Errorf("submission %d: %w", id, common.ErrNotFound)
	}
	return detail, nil
}
