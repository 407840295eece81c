package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error types for the yoink search pipeline
type ErrorType string

const (
	// Fatal errors: abort the invocation
	ErrorTypeConfig ErrorType = "config"
	ErrorTypeQuery  ErrorType = "query"
	ErrorTypeSpawn  ErrorType = "spawn"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"
)

// ConfigError represents an unreadable config file, a malformed toggle value
// or an invalid glob pattern.
type ConfigError struct {
	Type       ErrorType
	Path       string // config file the value came from, empty for built-ins
	Key        string // setting key, or "glob" for patterns
	Value      string
	Underlying error
}

// NewConfigError creates a new config error
func NewConfigError(path, key, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Path:       path,
		Key:        key,
		Value:      value,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	source := e.Path
	if source == "" {
		source = "built-in settings"
	}
	switch {
	case e.Key == "" && e.Value == "":
		return fmt.Sprintf("failed to read %s: %v", source, e.Underlying)
	case e.Key == "glob":
		return fmt.Sprintf("invalid ignore glob in %s: %s: %v", source, e.Value, e.Underlying)
	default:
		return fmt.Sprintf("invalid %s value in %s: %s: %v", e.Key, source, e.Value, e.Underlying)
	}
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// QueryError represents a query that is not a valid regular expression
type QueryError struct {
	Type       ErrorType
	Pattern    string
	Underlying error
}

// NewQueryError creates a new query error
func NewQueryError(pattern string, err error) *QueryError {
	return &QueryError{
		Type:       ErrorTypeQuery,
		Pattern:    pattern,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid regex query: %s: %v", e.Pattern, e.Underlying)
}

// Unwrap returns the underlying error
func (e *QueryError) Unwrap() error {
	return e.Underlying
}

// SpawnError represents an external program that could not be located or started
type SpawnError struct {
	Type       ErrorType
	Binary     string
	Operation  string
	Underlying error
}

// NewSpawnError creates a new spawn error
func NewSpawnError(binary, op string, err error) *SpawnError {
	return &SpawnError{
		Type:       ErrorTypeSpawn,
		Binary:     binary,
		Operation:  op,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *SpawnError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("required dependency not found in PATH: %s: %v", e.Binary, e.Underlying)
	}
	return fmt.Sprintf("failed to execute %s for %s: %v", e.Binary, e.Operation, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SpawnError) Unwrap() error {
	return e.Underlying
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileNotFound
	if errors.Is(err, fs.ErrPermission) {
		errorType = ErrorTypePermission
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// IsFatal reports whether err belongs to the categories that abort an invocation.
func IsFatal(err error) bool {
	var cfgErr *ConfigError
	var queryErr *QueryError
	var spawnErr *SpawnError
	var fileErr *FileError
	return errors.As(err, &cfgErr) || errors.As(err, &queryErr) ||
		errors.As(err, &spawnErr) || errors.As(err, &fileErr)
}

// Chain returns the message of err followed by the message of every nested cause.
func Chain(err error) []string {
	var out []string
	for err != nil {
		out = append(out, err.Error())
		err = errors.Unwrap(err)
	}
	return out
}
