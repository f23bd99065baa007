// Package errors provides the structured error type used across ctxforge.
// It mirrors the closed error-kind set that the core specifies: each kind
// carries a fixed category, and a fixed subset of kinds is fatal (aborts),
// so callers can dispatch on Code without parsing messages.
package errors

import "fmt"

// Code enumerates the closed set of error kinds the core produces.
type Code string

const (
	CodeIO             Code = "IO_ERROR"
	CodeParse          Code = "PARSE_ERROR"
	CodeVersionMismatch Code = "VERSION_MISMATCH"
	CodeIndexMissing   Code = "INDEX_MISSING"
	CodeEmptyQuery     Code = "EMPTY_QUERY"
	CodeBudgetUnderflow Code = "BUDGET_UNDERFLOW"
	CodeBroken         Code = "BROKEN_REFERENCE"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// Category groups codes by how the caller should react.
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryIndex      Category = "index"
	CategoryQuery      Category = "query"
	CategoryAssembly   Category = "assembly"
	CategoryInternal   Category = "internal"
)

var categoryByCode = map[Code]Category{
	CodeIO:              CategoryFilesystem,
	CodeParse:           CategoryIndex,
	CodeVersionMismatch: CategoryIndex,
	CodeIndexMissing:    CategoryIndex,
	CodeEmptyQuery:      CategoryQuery,
	CodeBudgetUnderflow: CategoryAssembly,
	CodeBroken:          CategoryAssembly,
	CodeInternal:        CategoryInternal,
}

// fatalCodes abort their command with a non-zero exit; the rest are
// handled inline (skip-and-report, or a benign empty/partial result).
var fatalCodes = map[Code]bool{
	CodeParse:        true,
	CodeIndexMissing: true,
	CodeInternal:     true,
}

// CoreError is the structured error type returned by every exported core
// operation. It implements error, Is (for errors.Is by Code), and Unwrap.
type CoreError struct {
	Code       Code
	Message    string
	Category   Category
	Details    map[string]string
	Cause      error
	Suggestion string
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is matches another CoreError by Code, enabling errors.Is(err, New(CodeIO, ...)).
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches a key-value pair of context and returns the receiver.
func (e *CoreError) WithDetail(key, value string) *CoreError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion attaches an actionable suggestion and returns the receiver.
func (e *CoreError) WithSuggestion(s string) *CoreError {
	e.Suggestion = s
	return e
}

// New constructs a CoreError with category derived from code.
func New(code Code, message string, cause error) *CoreError {
	return &CoreError{
		Code:     code,
		Message:  message,
		Category: categoryByCode[code],
		Cause:    cause,
	}
}

// Wrap creates a CoreError from an existing error, or returns nil if err is nil.
func Wrap(code Code, err error) *CoreError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// IsFatal reports whether err should abort the invoking command.
func IsFatal(err error) bool {
	ce, ok := err.(*CoreError)
	if !ok {
		return err != nil
	}
	return fatalCodes[ce.Code]
}

// GetCode extracts the Code from err, or "" if err is not a CoreError.
func GetCode(err error) Code {
	if ce, ok := err.(*CoreError); ok {
		return ce.Code
	}
	return ""
}
