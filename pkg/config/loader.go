package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNoFixtures is returned when a pattern matches no files.
var ErrNoFixtures = errors.New("no fixture files matched")

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars replaces ${VAR} and ${VAR:-default} references.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// LoadFixtures loads fixtures from every file matching the patterns.
// Patterns support ** for recursive directory matching. Files are read in
// sorted order; a pattern that matches nothing is an error.
func LoadFixtures(patterns ...string) ([]Fixture, error) {
	var result []Fixture

	for _, pattern := range patterns {
		matches, err := expandGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoFixtures, pattern)
		}
		sort.Strings(matches)

		for _, path := range matches {
			fixtures, err := LoadFixtureFile(path)
			if err != nil {
				return nil, err
			}
			result = append(result, fixtures...)
		}
	}

	return result, nil
}

// LoadFixtureFile loads the fixtures in a single YAML file.
func LoadFixtureFile(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	fixtures, err := ParseFixtures([]byte(ExpandEnvVars(string(data))))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range fixtures {
		fixtures[i].Source = path
		if fixtures[i].Name == "" {
			fixtures[i].Name = fmt.Sprintf("%s[%d]", filepath.Base(path), i)
		}
	}
	return fixtures, nil
}

// ParseFixtures parses YAML holding one fixture or a list of fixtures.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return file.Fixtures, nil
}

// expandGlob expands a glob pattern to a list of matching file paths.
// Uses doublestar for ** support, falls back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}
