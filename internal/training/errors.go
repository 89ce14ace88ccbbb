package training

import "fmt"

// InvalidFrameworkNameError reports a framework name that failed validation.
type InvalidFrameworkNameError struct {
	Name   string
	Reason string
}

func (e *InvalidFrameworkNameError) Error() string {
	return fmt.Sprintf("invalid framework name %q: %s", e.Name, e.Reason)
}

// InvalidPatternIDError reports a pattern id that failed validation.
type InvalidPatternIDError struct {
	ID     string
	Reason string
}

func (e *InvalidPatternIDError) Error() string {
	return fmt.Sprintf("invalid pattern ID %q: %s", e.ID, e.Reason)
}

// InvalidCategoryError reports a category name that failed validation.
type InvalidCategoryError struct {
	Name   string
	Reason string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category name %q: %s", e.Name, e.Reason)
}

// PatternNotFoundError means no pattern exists with the given id.
type PatternNotFoundError struct {
	ID string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("pattern not found: %s", e.ID)
}

// DuplicatePatternError means a pattern with the given id already exists.
type DuplicatePatternError struct {
	ID string
}

func (e *DuplicatePatternError) Error() string {
	return fmt.Sprintf("pattern with ID %q already exists", e.ID)
}

// SaveError wraps a failure writing the catalog.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save patterns to %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// LoadError wraps a failure reading the catalog.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load patterns from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PathTraversalError is raised when an identifier looks like a path
// traversal attempt. Kept distinct from the invalid-input errors so it can
// be logged and alerted on separately.
type PathTraversalError struct {
	Input string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("security error: path traversal attempt detected for %q", e.Input)
}
