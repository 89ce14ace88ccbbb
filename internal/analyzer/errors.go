package analyzer

import (
	"fmt"
	"strings"
)

// Typed analysis errors. Each carries enough context (path, expected
// alternatives, reason) to render directly to an operator.

// PathNotFoundError means the given project path does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("project path does not exist: %s", e.Path)
}

// NotADirectoryError means the given path exists but is not a directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("path is not a directory: %s", e.Path)
}

// NoProjectFileError means no recognized manifest was found in the root.
type NoProjectFileError struct {
	Path     string
	Expected []string
}

func (e *NoProjectFileError) Error() string {
	return fmt.Sprintf("no project file found in %s. Expected one of: %s",
		e.Path, strings.Join(e.Expected, ", "))
}

// ParseError means a manifest file exists but could not be parsed. Fatal for
// the whole analysis call.
type ParseError struct {
	FileType string
	Path     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file at %s: %v", e.FileType, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileReadError means a file could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// UnsupportedTypeError means a project type has no extraction strategy.
// Defensive; detection only ever yields supported types.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported project type: %s", e.Type)
}
