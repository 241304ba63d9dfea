package mock

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateMatcher classifies a registration that repeats a singleton
	// category or a keyed category's key.
	ErrDuplicateMatcher = errors.New("duplicate matcher")

	// ErrContradictoryMatcher classifies a registration whose key already
	// appears in the opposite category.
	ErrContradictoryMatcher = errors.New("contradictory matcher")
)

// ConfigError reports a matcher that cannot be added to a setup. It is
// raised at declaration time; the setup is left unchanged.
type ConfigError struct {
	// Category, Key and Description identify the rejected registration.
	Category    Category
	Key         string
	Description string

	// Conflict is the earlier registration that caused the rejection.
	Conflict Entry

	// Reason is ErrDuplicateMatcher or ErrContradictoryMatcher.
	Reason error
}

func (e *ConfigError) Error() string {
	target := e.Category.String() + " matcher"
	if e.Key != "" {
		target += fmt.Sprintf(" for key %q", e.Key)
	}

	if errors.Is(e.Reason, ErrContradictoryMatcher) {
		return fmt.Sprintf("%s: %s %q contradicts earlier %s matcher %q",
			e.Reason, target, e.Description, e.Conflict.Category, e.Conflict.Description)
	}
	return fmt.Sprintf("%s: %s %q conflicts with earlier %q",
		e.Reason, target, e.Description, e.Conflict.Description)
}

// Unwrap exposes Reason to errors.Is.
func (e *ConfigError) Unwrap() error {
	return e.Reason
}
