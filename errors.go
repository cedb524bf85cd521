// FILE: lixenwraith/appconfig/errors.go
package appconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrFileNotFound indicates a requested configuration file does not exist.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrCLIParse indicates command-line arguments could not be parsed.
	ErrCLIParse = errors.New("failed to parse command-line arguments")
)

// UnsupportedTypeError reports a schema field whose declared Go type
// is not a supported scalar, enumeration, tuple or nested schema.
type UnsupportedTypeError struct {
	Field string
	Type  reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %v for field %q", e.Type, e.Field)
}

// FieldOrderError reports a required field declared after a field with
// a default value at the same nesting level.
type FieldOrderError struct {
	Schema string
	Field  string
}

func (e *FieldOrderError) Error() string {
	return fmt.Sprintf("required field %q of %s must be declared before fields with defaults", e.Field, e.Schema)
}

// DuplicatePathError reports two schema fields resolving to the same
// flattened path.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate configuration path %q", e.Path)
}

// ParseError reports a configuration file whose content could not be
// parsed or is malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file '%s': %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IncludeCycleError reports a cycle in the _include graph of a
// configuration file. Cycle holds the chain of file paths in the order
// they were opened, ending with the repeated file.
type IncludeCycleError struct {
	Cycle []string
}

func (e *IncludeCycleError) Error() string {
	return "cyclic file include: " + strings.Join(e.Cycle, " -> ")
}

// ConversionError reports a raw value that could not be coerced to the
// declared type of its field.
type ConversionError struct {
	Path   string
	Raw    any
	Want   string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %v to %s for path %s: %s", e.Raw, e.Want, e.Path, e.Reason)
}

// MissingFieldError reports a required field that no source supplied.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no value discovered for required field %s", e.Path)
}

// ResolutionError aggregates all per-field failures of one resolution
// pass: conversion errors and missing required fields. Resolution never
// stops at the first problem, so the error names every one of them.
type ResolutionError struct {
	Errors []error
}

func (e *ResolutionError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("configuration resolution failed with %d error(s): %s",
		len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ResolutionError) Unwrap() []error { return e.Errors }
