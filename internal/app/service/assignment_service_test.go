package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coursework_tracker/internal/common"
	"coursework_tracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenCheck(slug string) CreateAssignmentRequest {
	return CreateAssignmentRequest{
		Title:       "Even Check",
		Slug:        slug,
		Description: "Return whether n is even",
		Details:     []string{"def is_even(n)", "negative numbers too"},
		Fixture:     &FixtureUpload{Name: "test_even.py", Data: []byte("def test_even(): pass\n")},
	}
}

func TestAssignmentService_CreateSanitizesSlugAndWritesFixture(t *testing.T) {
	f := newFixture(t, nil)

	created, err := f.catalog.Create(context.Background(), teacher, evenCheck("Even Check!"))
	require.NoError(t, err)

	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "even-check", created.Slug)
	assert.Equal(t, model.OriginCustom, created.Origin)
	require.NotNil(t, created.CreatorID)
	assert.Equal(t, teacher.UserID, *created.CreatorID)
	require.NotNil(t, created.CreatedAt)

	data, err := os.ReadFile(filepath.Join(f.fixtures.Dir("even-check"), "tests", "test_even.py"))
	require.NoError(t, err)
	assert.Equal(t, "def test_even(): pass\n", string(data))
	assert.Equal(t, 1, f.saver.count())
}

func TestAssignmentService_CreateSanitizesFixtureName(t *testing.T) {
	f := newFixture(t, nil)
	req := evenCheck("even")
	req.Fixture.Name = "../../checks"

	_, err := f.catalog.Create(context.Background(), teacher, req)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.fixtures.Dir("even"), "tests", "checks.py"))
}

func TestAssignmentService_CreateRejectsDuplicateSlug(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.catalog.Create(context.Background(), teacher, evenCheck("FizzBuzz"))

	assert.ErrorIs(t, err, common.ErrConflict)
	assert.False(t, f.fixtures.Exists("fizzbuzz"), "no directory for a rejected create")
	assert.Len(t, f.document(t).Assignments, 3)
	assert.Zero(t, f.saver.count())
}

func TestAssignmentService_CreateRejectsOrphanFixtureDirectory(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.MkdirAll(f.fixtures.Dir("even-check"), 0o755))

	_, err := f.catalog.Create(context.Background(), teacher, evenCheck("even-check"))

	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Len(t, f.document(t).Assignments, 3)
}

func TestAssignmentService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateAssignmentRequest)
	}{
		{"empty title", func(r *CreateAssignmentRequest) { r.Title = "  " }},
		{"empty slug", func(r *CreateAssignmentRequest) { r.Slug = "" }},
		{"slug without usable characters", func(r *CreateAssignmentRequest) { r.Slug = "!!!" }},
		{"missing fixture", func(r *CreateAssignmentRequest) { r.Fixture = nil }},
		{"empty fixture", func(r *CreateAssignmentRequest) { r.Fixture.Data = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := evenCheck("even-check")
			tt.mutate(&req)

			_, err := f.catalog.Create(context.Background(), teacher, req)

			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Len(t, f.document(t).Assignments, 3)
		})
	}
}

func TestAssignmentService_StudentsCannotMutateCatalog(t *testing.T) {
	f := newFixture(t, nil)
	title := "renamed"

	_, err := f.catalog.Create(context.Background(), student, evenCheck("even-check"))
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = f.catalog.Update(context.Background(), student, 1, UpdateAssignmentRequest{Title: &title})
	assert.ErrorIs(t, err, common.ErrForbidden)
	err = f.catalog.Delete(context.Background(), student, 1)
	assert.ErrorIs(t, err, common.ErrForbidden)

	assert.Equal(t, "FizzBuzz", f.document(t).Assignments[0].Title)
}

func TestAssignmentService_UpdateAppliesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t, nil)
	before := f.document(t).Assignments[0]
	title := "FizzBuzz Deluxe"

	updated, err := f.catalog.Update(context.Background(), teacher, before.ID, UpdateAssignmentRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.Details, updated.Details)
	assert.Equal(t, before.Slug, updated.Slug)
	assert.Equal(t, title, f.document(t).Assignments[0].Title)
}

func TestAssignmentService_UpdateErrors(t *testing.T) {
	f := newFixture(t, nil)
	empty := ""

	_, err := f.catalog.Update(context.Background(), teacher, 99, UpdateAssignmentRequest{})
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = f.catalog.Update(context.Background(), teacher, 1, UpdateAssignmentRequest{Title: &empty})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAssignmentService_DeleteRemovesCustomFixtureDirectory(t *testing.T) {
	f := newFixture(t, nil)
	created, err := f.catalog.Create(context.Background(), teacher, evenCheck("even-check"))
	require.NoError(t, err)
	require.True(t, f.fixtures.Exists("even-check"))

	require.NoError(t, f.catalog.Delete(context.Background(), teacher, created.ID))

	assert.False(t, f.fixtures.Exists("even-check"))
	_, err = f.catalog.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAssignmentService_DeleteBuiltinKeepsDirectory(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.MkdirAll(f.fixtures.Dir("fizzbuzz"), 0o755))

	require.NoError(t, f.catalog.Delete(context.Background(), teacher, 1))

	assert.True(t, f.fixtures.Exists("fizzbuzz"))
	assert.Len(t, f.document(t).Assignments, 2)
	assert.ErrorIs(t, f.catalog.Delete(context.Background(), teacher, 1), common.ErrNotFound)
}

func TestAssignmentService_IDsFollowCurrentMaximum(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first, err := f.catalog.Create(ctx, teacher, evenCheck("one"))
	require.NoError(t, err)
	require.Equal(t, 4, first.ID)
	require.NoError(t, f.catalog.Delete(ctx, teacher, first.ID))

	second, err := f.catalog.Create(ctx, teacher, evenCheck("two"))
	require.NoError(t, err)
	third, err := f.catalog.Create(ctx, teacher, evenCheck("three"))
	require.NoError(t, err)

	assert.Equal(t, 4, second.ID, "deleting the highest id frees it")
	assert.Equal(t, 5, third.ID)
}

func TestAssignmentService_SlugsThatSanitizeAlikeConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.catalog.Create(ctx, teacher, evenCheck("Even Check!!"))
	require.NoError(t, err)
	require.Equal(t, "even-check", created.Slug)

	_, err = f.catalog.Create(ctx, teacher, evenCheck("even--check"))
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Len(t, f.document(t).Assignments, 4)
}

func TestAssignmentService_ListReturnsCopies(t *testing.T) {
	f := newFixture(t, nil)

	list := f.catalog.List(context.Background())
	require.Len(t, list, 3)
	list[0].Details[0] = "mutated"

	assert.NotEqual(t, "mutated", f.document(t).Assignments[0].Details[0])
}
