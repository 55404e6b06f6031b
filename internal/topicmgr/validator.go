package topicmgr

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Topic names are dot separated lowercase segments, e.g. auth.state.changed.
	namePattern   = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9]*)*$`)
	modulePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	frameworkPrefixes = []string{"auth.", "authview.", "ws.", "server."}
)

// ValidateName checks that a topic name follows the naming convention.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("name too long (max 100 characters)")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name must be lowercase dot separated segments")
	}
	return nil
}

// ValidateDefinition checks a topic before registration.
func ValidateDefinition(topic Topic) error {
	if topic == nil {
		return fmt.Errorf("topic cannot be nil")
	}
	if err := ValidateName(topic.Name()); err != nil {
		return fmt.Errorf("invalid topic name: %w", err)
	}
	if strings.TrimSpace(topic.Description()) == "" {
		return fmt.Errorf("topic description cannot be empty")
	}
	if strings.TrimSpace(topic.Pattern()) == "" {
		return fmt.Errorf("topic pattern cannot be empty")
	}

	switch topic.Scope() {
	case ScopeFramework:
		if topic.Module() != "" {
			return fmt.Errorf("framework topics should not have a module")
		}
		for _, prefix := range frameworkPrefixes {
			if strings.HasPrefix(topic.Name(), prefix) {
				return nil
			}
		}
		return fmt.Errorf("framework topic must start with one of %v", frameworkPrefixes)
	case ScopeModule:
		if !modulePattern.MatchString(topic.Module()) {
			return fmt.Errorf("module name must be lowercase alphanumeric with underscores")
		}
		return nil
	default:
		return fmt.Errorf("invalid topic scope: %q", topic.Scope())
	}
}
