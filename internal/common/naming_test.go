package common_test

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"coursework_tracker/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Even Check!!", "even-check"},
		{"even--check", "even-check"},
		{"  --Vector 2D--  ", "vector-2d"},
		{"csv_stats", "csv-stats"},
		{"ÄÖÜ", ""},
		{"!!!", ""},
		{"", ""},
		{"fizzbuzz", "fizzbuzz"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, common.SanitizeSlug(tt.in))
		})
	}
}

func TestSanitizeFixtureName(t *testing.T) {
	exts := []string{".py"}
	tests := []struct {
		in   string
		want string
	}{
		{"test_even.py", "test_even.py"},
		{"test even (1).py", "testeven1.py"},
		{"test_even", "test_even.py"},
		{"../../etc/passwd", "passwd.py"},
		{`C:\fixtures\test_x.PY`, "test_x.PY"},
		{"..", "test_fixture.py"},
		{"", "test_fixture.py"},
		{"notes.txt", "notes.txt.py"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, common.SanitizeFixtureName(tt.in, exts, ".py"))
		})
	}
}

func TestStoredArtifactName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name := common.StoredArtifactName("dir/solution.zip", now)

	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-f]{8}-solution\.zip$`), name)
	assert.NotEqual(t, name, common.StoredArtifactName("solution.zip", now))
}

func TestHTTPStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, common.HTTPStatusFromError(nil))
	assert.Equal(t, http.StatusBadRequest, common.HTTPStatusFromError(fmt.Errorf("title: %w", common.ErrValidation)))
	assert.Equal(t, http.StatusConflict, common.HTTPStatusFromError(fmt.Errorf("slug: %w", common.ErrConflict)))
	assert.Equal(t, http.StatusTooManyRequests, common.HTTPStatusFromError(common.ErrQuotaExceeded))
	assert.Equal(t, http.StatusNotFound, common.HTTPStatusFromError(common.ErrNotFound))
	assert.Equal(t, http.StatusForbidden, common.HTTPStatusFromError(common.ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, common.HTTPStatusFromError(errors.New("boom")))
}
