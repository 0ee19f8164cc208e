package model

// Document is the whole persisted record graph.
type Document struct {
	Users       []User       `json:"users"`
	Assignments []Assignment `json:"assignments"`
	Submissions []Submission `json:"submissions"`
	Results     []Result     `json:"results"`
}

func (d *Document) FindUser(id int) (int, bool) {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindUserByEmail(email string) (int, bool) {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindAssignment(id int) (int, bool) {
	for i := range d.Assignments {
		if d.Assignments[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindAssignmentBySlug(slug string) (int, bool) {
	for i := range d.Assignments {
		if d.Assignments[i].Slug == slug {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindSubmission(id int) (int, bool) {
	for i := range d.Submissions {
		if d.Submissions[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// LatestResult returns the most recently recorded result for a submission.
// Results are append-only, so the last match in slice order is the newest.
func (d *Document) LatestResult(submissionID int) (*Result, bool) {
	for i := len(d.Results) - 1; i >= 0; i-- {
		if d.Results[i].SubmissionID == submissionID {
			r := d.Results[i]
			return &r, true
		}
	}
	return nil, false
}

// CountSubmissions counts a user's submissions against one assignment.
func (d *Document) CountSubmissions(userID, assignmentID int) int {
	n := 0
	for _, s := range d.Submissions {
		if s.UserID == userID && s.AssignmentID == assignmentID {
			n++
		}
	}
	return n
}
