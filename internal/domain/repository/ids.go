package repository

import "coursework_tracker/internal/domain/model"

// nextID returns one more than the largest identity in items, or 1 when
// items is empty. It is computed on every call so deletions are honored.
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if v := id(item); v > max {
			max = v
		}
	}
	return max + 1
}

func NextUserID(doc *model.Document) int {
	return nextID(doc.Users, func(u model.User) int { return u.ID })
}

func NextAssignmentID(doc *model.Document) int {
	return nextID(doc.Assignments, func(a model.Assignment) int { return a.ID })
}

func NextSubmissionID(doc *model.Document) int {
	return nextID(doc.Submissions, func(s model.Submission) int { return s.ID })
}

func NextResultID(doc *model.Document) int {
	return nextID(doc.Results, func(r model.Result) int { return r.ID })
}
