package repository_test

import (
	"context"
	"errors"
	"testing"

	"coursework_tracker/internal/domain/model"
	"coursework_tracker/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSaver struct {
	saves int
	err   error
}

func (s *countingSaver) Save(_ context.Context, _ *model.Document) error {
	s.saves++
	return s.err
}

func TestRecords_UpdatePersistsOnSuccess(t *testing.T) {
	saver := &countingSaver{}
	records := repository.NewRecords(repository.DefaultDocument(), saver)

	err := records.Update(context.Background(), func(doc *model.Document) error {
		doc.Users = append(doc.Users, model.User{ID: repository.NextUserID(doc), Email: "new@test.com", Role: model.RoleStudent})
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, saver.saves)
	records.View(func(doc *model.Document) {
		_, ok := doc.FindUserByEmail("new@test.com")
		assert.True(t, ok)
	})
}

func TestRecords_UpdateSkipsPersistOnError(t *testing.T) {
	saver := &countingSaver{}
	records := repository.NewRecords(repository.DefaultDocument(), saver)
	boom := errors.New("rejected")

	err := records.Update(context.Background(), func(doc *model.Document) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, saver.saves)
}

func TestRecords_PersistFailureKeepsMutation(t *testing.T) {
	saver := &countingSaver{err: errors.New("disk full")}
	records := repository.NewRecords(repository.DefaultDocument(), saver)

	err := records.Update(context.Background(), func(doc *model.Document) error {
		doc.Assignments[0].Title = "FizzBuzz II"
		return nil
	})

	require.NoError(t, err, "persist failures are logged, not returned")
	records.View(func(doc *model.Document) {
		assert.Equal(t, "FizzBuzz II", doc.Assignments[0].Title)
	})
}

func TestNextID_UsesMaxNotLength(t *testing.T) {
	doc := &model.Document{}
	assert.Equal(t, 1, repository.NextAssignmentID(doc))

	doc.Assignments = []model.Assignment{{ID: 1}, {ID: 5}, {ID: 3}}
	assert.Equal(t, 6, repository.NextAssignmentID(doc))

	doc.Assignments = doc.Assignments[:1]
	assert.Equal(t, 2, repository.NextAssignmentID(doc))

	doc.Results = []model.Result{{ID: 9}}
	assert.Equal(t, 10, repository.NextResultID(doc))
	assert.Equal(t, 1, repository.NextSubmissionID(doc))
}
