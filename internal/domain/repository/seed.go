package repository

import "coursework_tracker/internal/domain/model"

// DefaultDocument is the graph written on first start: two demo accounts and
// the builtin assignments whose fixtures ship in the tasks directory.
func DefaultDocument() *model.Document {
	return &model.Document{
		Users: []model.User{
			{ID: 1, Email: "student@test.com", Password: "123456", Role: model.RoleStudent},
			{ID: 2, Email: "teacher@test.com", Password: "123456", Role: model.RoleTeacher},
		},
		Assignments: []model.Assignment{
			{
				ID:          1,
				Title:       "FizzBuzz",
				Slug:        "fizzbuzz",
				Description: "Write a FizzBuzz function",
				Details: []string{
					"Implement fizzbuzz(n) returning a list of strings for 1..n",
					"Multiples of 3 become Fizz, multiples of 5 become Buzz, both become FizzBuzz",
				},
				Origin: model.OriginBuiltin,
			},
			{
				ID:          2,
				Title:       "CSV Statistics",
				Slug:        "csv-stats",
				Description: "Process CSV data",
				Details: []string{
					"Read a CSV file with a header row",
					"Report count, mean, min and max for every numeric column",
				},
				Origin: model.OriginBuiltin,
			},
			{
				ID:          3,
				Title:       "Vector2D",
				Slug:        "vector2d",
				Description: "2D Vector operations",
				Details: []string{
					"Implement a Vector2D class with addition, subtraction and scalar multiplication",
					"Provide dot product and magnitude",
				},
				Origin: model.OriginBuiltin,
			},
		},
		Submissions: []model.Submission{},
		Results:     []model.Result{},
	}
}
