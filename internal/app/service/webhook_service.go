package service

import (
	"context"
	"fmt"
	"time"

	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/logger"

	"go.uber.org/zap"
)

type WebhookService struct {
	records *repository.Records
	now     func() time.Time
	logger  *zap.SugaredLogger
}

func NewWebhookService(records *repository.Records) *WebhookService {
	return &WebhookService{
		records: records,
		now:     utcNow,
		logger:  logger.NewNamedLogger("results"),
	}
}

// RunnerCallbackPayload is what the grading runner posts back. Absent
// numeric fields decode as zero and an absent feedback as "".
type RunnerCallbackPayload struct {
	SubmissionID int     `json:"submissionId"`
	Status       string  `json:"status"`
	Score        float64 `json:"score"`
	TotalTests   int     `json:"totalTests"`
	PassedTests  int     `json:"passedTests"`
	Feedback     string  `json:"feedback"`
}

// HandleRunnerCallback always records a Result row. The submission status
// is overwritten only when the submission exists and a status was sent.
func (s *WebhookService) HandleRunnerCallback(ctx context.Context, payload RunnerCallbackPayload) (*model.Result, error) {
	for _, problem := range payload.outOfRange() {
		s.logger.Warnf("Callback for submission %d: %s, recording as sent", payload.SubmissionID, problem)
	}

	var result model.Result
	err := s.records.Update(ctx, func(doc *model.Document) error {
		result = model.Result{
			ID:           repository.NextResultID(doc),
			SubmissionID: payload.SubmissionID,
			Score:        payload.Score,
			TotalTests:   payload.TotalTests,
			PassedTests:  payload.PassedTests,
			Feedback:     payload.Feedback,
			CreatedAt:    s.now(),
		}
		doc.Results = append(doc.Results, result)

		i, ok := doc.FindSubmission(payload.SubmissionID)
		switch {
		case !ok:
			s.logger.Warnf("Result %d recorded for unknown submission %d", result.ID, payload.SubmissionID)
		case payload.Status == "":
			s.logger.Warnf("Callback for submission %d carried no status, keeping %q", payload.SubmissionID, doc.Submissions[i].Status)
		default:
			doc.Submissions[i].Status = payload.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Submission %d graded: status=%s score=%v passed=%d/%d", payload.SubmissionID, payload.Status, payload.Score, payload.PassedTests, payload.TotalTests)
	return &result, nil
}

// outOfRange lists values outside their documented range. They are still
// recorded verbatim.
func (p RunnerCallbackPayload) outOfRange() []string {
	var problems []string
	if p.Score < 0 || p.Score > 1 {
		problems = append(problems, fmt.Sprintf("score %v outside 0..1", p.Score))
	}
	if p.TotalTests < 0 {
		problems = append(problems, fmt.Sprintf("negative totalTests %d", p.TotalTests))
	}
	if p.PassedTests < 0 {
		problems = append(problems, fmt.Sprintf("negative passedTests %d", p.PassedTests))
	}
	if p.TotalTests >= 0 && p.PassedTests > p.TotalTests {
		problems = append(problems, fmt.Sprintf("passedTests %d exceeds totalTests %d", p.PassedTests, p.TotalTests))
	}
	return problems
}
