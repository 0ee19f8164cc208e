package service

import (
	"path/filepath"
	"sort"
	"strings"

	"coursework_tracker/internal/domain/model"
)

const defaultLanguage = "python"

// LanguageService is the static registry of languages the runner can grade.
type LanguageService struct {
	languages map[string]model.Language
}

func NewLanguageService() *LanguageService {
	return &LanguageService{
		languages: map[string]model.Language{
			"python": {
				Name:           "Python",
				Extensions:     []string{".py"},
				TestFramework:  "pytest",
				Runner:         "python-runner",
				TimeoutSeconds: 60,
				MemoryLimit:    "512m",
				CPULimit:       "1.0",
			},
		},
	}
}

// Supported lists registry keys in a stable order.
func (s *LanguageService) Supported() []string {
	keys := make([]string, 0, len(s.languages))
	for k := range s.languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *LanguageService) Config(key string) (model.Language, bool) {
	lang, ok := s.languages[strings.ToLower(key)]
	return lang, ok
}

// Detect picks the language whose extensions match the most file names.
// With no match it falls back to python at zero confidence.
func (s *LanguageService) Detect(fileNames []string) model.Detection {
	best, bestHits := defaultLanguage, 0
	for _, key := range s.Supported() {
		hits := 0
		for _, name := range fileNames {
			if hasExtension(name, s.languages[key].Extensions) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = key, hits
		}
	}

	confidence := 0.0
	if len(fileNames) > 0 {
		confidence = float64(bestHits) / float64(len(fileNames))
	}
	return model.Detection{
		Language:   best,
		Confidence: confidence,
		Config:     s.languages[best],
	}
}

// FixtureExtensions is every extension a fixture file may already carry.
func (s *LanguageService) FixtureExtensions() []string {
	var exts []string
	for _, key := range s.Supported() {
		exts = append(exts, s.languages[key].Extensions...)
	}
	return exts
}

func (s *LanguageService) DefaultExtension() string {
	return s.languages[defaultLanguage].Extensions[0]
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
