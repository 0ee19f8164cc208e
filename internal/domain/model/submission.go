package model

import "time"

// Runner-reported statuses are free-form; queued is the only one assigned here.
const (
	StatusQueued = "queued"
	StatusGraded = "graded"
	StatusError  = "error"
)

// MaxSubmissionsPerAssignment is the quota per (user, assignment) pair.
const MaxSubmissionsPerAssignment = 2

type Submission struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	AssignmentID int       `json:"assignmentId"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Result struct {
	ID           int       `json:"id"`
	SubmissionID int       `json:"submissionId"`
	Score        float64   `json:"score"`
	TotalTests   int       `json:"totalTests"`
	PassedTests  int       `json:"passedTests"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubmissionView is a submission enriched with its latest result and, for
// teacher listings, the owner's email.
type SubmissionView struct {
	Submission
	AssignmentTitle *string  `json:"assignmentTitle,omitempty"`
	UserEmail       *string  `json:"userEmail,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	TotalTests      *int     `json:"totalTests,omitempty"`
	PassedTests     *int     `json:"passedTests,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
}

// SubmissionDetail pairs a submission with its most recent result, if any.
type SubmissionDetail struct {
	Submission Submission `json:"submission"`
	Result     *Result    `json:"result"`
}
