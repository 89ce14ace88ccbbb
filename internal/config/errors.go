package config

import "fmt"

// FileNotFoundError means an explicitly requested config file is missing.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// InvalidFormatError wraps a config file that could not be decoded.
type InvalidFormatError struct {
	Path string
	Err  error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid configuration format in %s: %v", e.Path, e.Err)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// MissingFieldError names a required field that was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required configuration field: %s", e.Field)
}

// InvalidValueError names a field whose value failed validation.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Reason)
}
