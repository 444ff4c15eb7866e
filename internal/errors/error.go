package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting    Category = "routing"
	CategoryNavigation Category = "navigation"
	CategoryView       Category = "view"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// ShowcaseError is a coded error with an explanation and a fix suggestion.
type ShowcaseError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ShowcaseError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ShowcaseError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *ShowcaseError) WithDetail(d string) *ShowcaseError {
	e.Detail = d
	return e
}

// WithSuggestion replaces the fix suggestion.
func (e *ShowcaseError) WithSuggestion(s string) *ShowcaseError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *ShowcaseError) Wrap(err error) *ShowcaseError {
	e.Wrapped = err
	return e
}

// New creates an error from a registered code.
func New(code string) *ShowcaseError {
	template, ok := registry[code]
	if !ok {
		return &ShowcaseError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ShowcaseError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *ShowcaseError {
	return &ShowcaseError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err to a ShowcaseError. Known router and config
// failures get their registered code; anything else gets fallback.
func FromError(err error, fallback string) *ShowcaseError {
	if err == nil {
		return nil
	}
	var se *ShowcaseError
	if stderrors.As(err, &se) {
		return se
	}
	code := fallback
	for _, m := range mappings {
		if stderrors.Is(err, m.target) {
			code = m.code
			break
		}
	}
	return New(code).Wrap(err)
}
