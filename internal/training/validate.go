package training

import "strings"

const maxIdentifierLen = 128

// checkIdentifier validates an identity-bearing input (framework name,
// pattern id, category). Some of these later become file or cache names, so
// path separators and ".." segments are rejected outright — never sanitized.
// It returns a human-readable reason and whether the violation resembles a
// traversal attempt.
func checkIdentifier(value string) (reason string, traversal bool, ok bool) {
	switch {
	case value == "":
		return "must not be empty", false, false
	case len(value) > maxIdentifierLen:
		return "exceeds maximum length", false, false
	case strings.ContainsRune(value, 0):
		return "contains NUL byte", false, false
	case strings.ContainsAny(value, `/\`):
		return "contains path separator", true, false
	case containsDotDot(value):
		return "contains '..' segment", true, false
	}
	return "", false, true
}

func containsDotDot(value string) bool {
	return value == ".." ||
		strings.Contains(value, "..")
}

// validateFramework, validatePatternID, and validateCategory wrap
// checkIdentifier in the matching typed error. Traversal-shaped violations
// surface as PathTraversalError regardless of which field carried them.
func validateFramework(name string) error {
	reason, traversal, ok := checkIdentifier(name)
	if ok {
		return nil
	}
	if traversal {
		return &PathTraversalError{Input: name}
	}
	return &InvalidFrameworkNameError{Name: name, Reason: reason}
}

func validatePatternID(id string) error {
	reason, traversal, ok := checkIdentifier(id)
	if ok {
		return nil
	}
	if traversal {
		return &PathTraversalError{Input: id}
	}
	return &InvalidPatternIDError{ID: id, Reason: reason}
}

func validateCategory(name string) error {
	reason, traversal, ok := checkIdentifier(name)
	if ok {
		return nil
	}
	if traversal {
		return &PathTraversalError{Input: name}
	}
	return &InvalidCategoryError{Name: name, Reason: reason}
}
