package types

import (
	"errors"
	"fmt"
	"strings"
)

// asErr is errors.As behind a short name for the predicate helpers below.
func asErr(err error, target interface{}) bool {
	return errors.As(err, target)
}

// MissingFieldError indicates a required project configuration field was
// empty when a template was rendered.
type MissingFieldError struct {
	Field string
}

// Error returns the error message.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NewMissingFieldError creates a MissingFieldError for the given field.
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// IsMissingFieldError checks if an error is a MissingFieldError.
func IsMissingFieldError(err error) bool {
	var mfe *MissingFieldError
	return asErr(err, &mfe)
}

// MissingSecretError indicates one or more required secrets were absent or
// empty at deploy time. Names holds every missing secret, in required-list
// order, so the operator can fix all gaps in one pass.
type MissingSecretError struct {
	Names []string
}

// Error returns the error message listing every missing secret.
func (e *MissingSecretError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("missing secret: %s", e.Names[0])
	}
	return fmt.Sprintf("missing secrets: %s", strings.Join(e.Names, ", "))
}

// NewMissingSecretError creates a MissingSecretError for the given names.
func NewMissingSecretError(names ...string) *MissingSecretError {
	return &MissingSecretError{Names: names}
}

// IsMissingSecretError checks if an error is a MissingSecretError.
func IsMissingSecretError(err error) bool {
	var mse *MissingSecretError
	return asErr(err, &mse)
}

// SigningResolutionError indicates the signing credential store was
// unreachable or held no profile matching the requested platform and
// bundle identifier.
type SigningResolutionError struct {
	Message string
}

// Error returns the error message.
func (e *SigningResolutionError) Error() string {
	return fmt.Sprintf("signing resolution failed: %s", e.Message)
}

// NewSigningResolutionError creates a SigningResolutionError.
func NewSigningResolutionError(format string, args ...interface{}) *SigningResolutionError {
	return &SigningResolutionError{Message: fmt.Sprintf(format, args...)}
}

// IsSigningResolutionError checks if an error is a SigningResolutionError.
func IsSigningResolutionError(err error) bool {
	var sre *SigningResolutionError
	return asErr(err, &sre)
}

// BuildError indicates the compile/package step failed.
type BuildError struct {
	Message string
	Err     error
}

// Error returns the error message.
func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("build failed: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error { return e.Err }

// NewBuildError creates a BuildError wrapping err.
func NewBuildError(message string, err error) *BuildError {
	return &BuildError{Message: message, Err: err}
}

// IsBuildError checks if an error is a BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return asErr(err, &be)
}

// UploadError indicates the distribution endpoint rejected the artifact or
// timed out.
type UploadError struct {
	Message string
	Err     error
}

// Error returns the error message.
func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("upload failed: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *UploadError) Unwrap() error { return e.Err }

// NewUploadError creates an UploadError wrapping err.
func NewUploadError(message string, err error) *UploadError {
	return &UploadError{Message: message, Err: err}
}

// IsUploadError checks if an error is an UploadError.
func IsUploadError(err error) bool {
	var ue *UploadError
	return asErr(err, &ue)
}
