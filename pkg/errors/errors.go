// Package errors provides the typed errors used across astromap.
// Every error type maps onto a sentinel through Is, so callers can branch
// with errors.Is instead of matching messages. Merge failures, parser
// failures and configuration failures are distinct types.
package errors

import (
	"errors"
	"fmt"
)

// New is errors.New, re-exported for convenience.
var New = errors.New

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a page parser that does not exist yet
	ErrNotImplemented = errors.New("not implemented")

	// ErrFetchFailed indicates that a wiki page could not be downloaded
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMergeConflict indicates two sources disagree on a value that must match
	ErrMergeConflict = errors.New("merge conflict")

	// ErrNoPolicy indicates a policy path that does not resolve in the policy tree
	ErrNoPolicy = errors.New("no merge policy")

	// ErrBothMissing indicates a merge where neither side has a value
	ErrBothMissing = errors.New("both values missing")

	// ErrArgumentCount indicates a merge invoked with too few records
	ErrArgumentCount = errors.New("not enough records")

	// ErrUnsupportedOperands indicates values a strategy cannot combine
	ErrUnsupportedOperands = errors.New("unsupported operands")
)

// rootPath is how the empty field path is rendered in messages.
const rootPath = "<root>"

func displayPath(path string) string {
	if path == "" {
		return rootPath
	}
	return path
}

// MergeConflictError is returned when a match policy sees two different values.
type MergeConflictError struct {
	Path  string
	Left  any
	Right any
}

// Error implements the error interface
func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("values do not match at %s: %#v != %#v", displayPath(e.Path), e.Left, e.Right)
}

// Is implements errors.Is support
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NoPolicyError is returned when a policy path cannot be resolved.
type NoPolicyError struct {
	Path string
}

// Error implements the error interface
func (e *NoPolicyError) Error() string {
	return fmt.Sprintf("merge policy not found: %s", displayPath(e.Path))
}

// Is implements errors.Is support
func (e *NoPolicyError) Is(target error) bool {
	return target == ErrNoPolicy
}

// BothMissingError is returned when both sides of a merge are missing.
type BothMissingError struct {
	Path string
}

// Error implements the error interface
func (e *BothMissingError) Error() string {
	return fmt.Sprintf("can't merge two missing values at %s", displayPath(e.Path))
}

// Is implements errors.Is support
func (e *BothMissingError) Is(target error) bool {
	return target == ErrBothMissing
}

// ArgumentCountError is returned when a merge receives fewer records than it needs.
type ArgumentCountError struct {
	Got int
	Min int
}

// Error implements the error interface
func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("need at least %d records to merge, got %d", e.Min, e.Got)
}

// Is implements errors.Is support
func (e *ArgumentCountError) Is(target error) bool {
	return target == ErrArgumentCount
}

// OperandError is returned when a strategy receives values of the wrong shape,
// such as adding a string to a number.
type OperandError struct {
	Op    string
	Path  string
	Left  any
	Right any
}

// Error implements the error interface
func (e *OperandError) Error() string {
	return fmt.Sprintf("unsupported operands for %s at %s: %T and %T", e.Op, displayPath(e.Path), e.Left, e.Right)
}

// Is implements errors.Is support
func (e *OperandError) Is(target error) bool {
	return target == ErrUnsupportedOperands
}

// DatasetError wraps the failure of the final dataset merge so it can be
// told apart from per-page failures.
type DatasetError struct {
	Err error
}

// Error implements the error interface
func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset merge failed: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DatasetError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed wiki page download.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("error fetching %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents a failure to parse a document, either a wiki page
// or a policy file.
type ParseError struct {
	Format  string // "html", "json", "yaml", "json5"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotImplemented checks if an error marks a parser that does not exist yet
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsMergeConflict checks if an error is a merge conflict
func IsMergeConflict(err error) bool {
	return errors.Is(err, ErrMergeConflict)
}

// IsNoPolicy checks if an error is an unresolved policy path
func IsNoPolicy(err error) bool {
	return errors.Is(err, ErrNoPolicy)
}

// IsBothMissing checks if an error is a merge of two missing values
func IsBothMissing(err error) bool {
	return errors.Is(err, ErrBothMissing)
}

// IsArgumentCount checks if an error is a merge with too few records
func IsArgumentCount(err error) bool {
	return errors.Is(err, ErrArgumentCount)
}

// IsMergeError reports whether err comes from the merge engine rather than
// from fetching or parsing pages.
func IsMergeError(err error) bool {
	return IsMergeConflict(err) || IsNoPolicy(err) || IsBothMissing(err) ||
		IsArgumentCount(err) || errors.Is(err, ErrUnsupportedOperands)
}
