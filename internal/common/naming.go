package common

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var (
	nonSlugRun    = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
	nonFixtureRun = regexp.MustCompile(`[^\w.-]+`)
)

// SanitizeSlug lowercases s, collapses every run of characters outside
// [a-z0-9-] (and every run of hyphens) to one hyphen and trims hyphens from
// both ends. An empty return means nothing usable was left.
func SanitizeSlug(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = nonSlugRun.ReplaceAllString(out, "-")
	out = hyphenRun.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	if out == "" || !slug.IsSlug(out) {
		return ""
	}
	return out
}

// SanitizeFixtureName keeps word characters, dots and hyphens of the base
// name and appends defaultExt unless the name already ends in one of exts.
func SanitizeFixtureName(name string, exts []string, defaultExt string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = nonFixtureRun.ReplaceAllString(base, "")
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "test_fixture"
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range exts {
		if ext == e {
			return base
		}
	}
	return base + defaultExt
}

// StoredArtifactName prefixes the original upload name with a millisecond
// timestamp and a short random token so identical names never collide.
func StoredArtifactName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = strings.TrimLeft(base, ".")
	if base == "" || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString()[:8], base)
}
