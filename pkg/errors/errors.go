// Package errors provides structured error handling for the volcano
// classification pipeline. Error types carry enough context to be logged
// structurally and to be classified as fatal (data unavailable, schema
// mismatch) or per-resample recoverable (degenerate fold).
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// DataUnavailableError indicates the source dataset could not be fetched
// or parsed. It is fatal: the run aborts before any resampling.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("volcanoml: data unavailable from %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("volcanoml: data unavailable from %s", e.Source)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DataUnavailableError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		AnErr("cause", e.Err).
		Str("type", "DataUnavailableError")
}

// NewDataUnavailableError creates a DataUnavailableError with a stack trace.
func NewDataUnavailableError(source string, err error) error {
	return errors.WithStack(&DataUnavailableError{Source: source, Err: err})
}

// SchemaMismatchError indicates the fetched table is missing required
// columns or a column has an unexpected type. Fatal before resampling.
type SchemaMismatchError struct {
	Column string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("volcanoml: schema mismatch on column %q: %s", e.Column, e.Reason)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(column, reason string) error {
	return errors.WithStack(&SchemaMismatchError{Column: column, Reason: reason})
}

// DegenerateFoldError indicates that one bootstrap resample's training
// fold cannot be oversampled because a class has fewer members than the
// SMOTE neighbor count requires. It is recovered per resample: that
// fold's results are excluded and the run continues.
type DegenerateFoldError struct {
	Resample  int
	Class     string
	Count     int
	Neighbors int
}

func (e *DegenerateFoldError) Error() string {
	return fmt.Sprintf("volcanoml: degenerate fold %d: class %q has %d members, need more than %d for oversampling",
		e.Resample, e.Class, e.Count, e.Neighbors)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DegenerateFoldError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("resample", e.Resample).
		Str("class", e.Class).
		Int("count", e.Count).
		Int("neighbors", e.Neighbors).
		Str("type", "DegenerateFoldError")
}

// NewDegenerateFoldError creates a DegenerateFoldError with a stack trace.
func NewDegenerateFoldError(resample int, class string, count, neighbors int) error {
	return errors.WithStack(&DegenerateFoldError{
		Resample:  resample,
		Class:     class,
		Count:     count,
		Neighbors: neighbors,
	})
}

// NotFittedError indicates Predict or Transform was called on an
// estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("volcanoml: %s: not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError indicates input data whose dimensions do not match what
// an estimator learned during fitting.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("volcanoml: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValueError indicates an argument value that is invalid for the
// operation, such as an empty matrix or a non-positive count.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("volcanoml: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Common error values.
var (
	// ErrEmptyData is returned when an empty table or matrix is passed.
	ErrEmptyData = New("empty data")
)
