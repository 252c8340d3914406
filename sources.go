package banksort

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source describes one statement source: a directory of statement files, the
// type/name tag stamped onto every entry it produces, and the ordered rule
// list resolving each record's action.
type Source struct {
	Dir   string   `json:"dir"`
	Type  string   `json:"type"`
	Name  string   `json:"name"`
	Rules RuleList `json:"rules"`
}

// DecodeSources decodes a source-descriptor file: a JSON sequence of source
// objects.
func DecodeSources(r io.Reader) ([]Source, error) {
	var sources []Source
	if err := json.NewDecoder(r).Decode(&sources); err != nil {
		return nil, fmt.Errorf("cannot parse source descriptors: %w", err)
	}
	return sources, nil
}

// LoadSources reads the source-descriptor file at path. Each source's Dir is
// resolved relative to the descriptor file's own directory.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open source descriptors %q: %w", path, err)
	}
	defer f.Close()

	sources, err := DecodeSources(f)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range sources {
		if !filepath.IsAbs(sources[i].Dir) {
			sources[i].Dir = filepath.Join(base, sources[i].Dir)
		}
	}
	return sources, nil
}

// CategoryRules is the classifier's configuration: the set of valid category
// names, the ordered rule list, and the outcome applied when no rule matches
// (ask, unless the file overrides it).
type CategoryRules struct {
	Categories []string `json:"categories"`
	Rules      RuleList `json:"rules"`
	Default    Outcome  `json:"default"`
}

// DecodeCategoryRules decodes a category-rule file.
func DecodeCategoryRules(r io.Reader) (*CategoryRules, error) {
	var cr CategoryRules
	if err := json.NewDecoder(r).Decode(&cr); err != nil {
		return nil, fmt.Errorf("cannot parse category rules: %w", err)
	}
	if cr.Default == "" {
		cr.Default = Ask
	}
	return &cr, nil
}

// LoadCategoryRules reads the category-rule file at path.
func LoadCategoryRules(path string) (*CategoryRules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open category rules %q: %w", path, err)
	}
	defer f.Close()

	cr, err := DecodeCategoryRules(f)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", path, err)
	}
	return cr, nil
}

// ValidCategory reports whether name is one of the enumerated categories.
func (cr *CategoryRules) ValidCategory(name string) bool {
	for _, c := range cr.Categories {
		if c == name {
			return true
		}
	}
	return false
}
