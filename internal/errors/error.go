package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryRoutes  Category = "routes"
	CategoryPublish Category = "publish"
)

// Location represents a source code location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// CodedError is a structured error with a registered code.
type CodedError struct {
	// Code is a unique error identifier (e.g., "E170").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the route template the error concerns, if any.
	Path string

	// Location is the source file location, if any.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
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
func (e *CodedError) Unwrap() error {
	return e.Wrapped
}

// WithPath sets the route template the error concerns.
func (e *CodedError) WithPath(path string) *CodedError {
	e.Path = path
	return e
}

// WithLocation adds a source location to the error.
func (e *CodedError) WithLocation(file string, line, column int) *CodedError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithLocationFromError extracts a location from a Go parser error of the
// form "file.go:line:column: message".
func (e *CodedError) WithLocationFromError(err error) *CodedError {
	if err == nil {
		return e
	}
	msg := err.Error()
	// Strip wrapping prefixes such as "scanning x.go: ".
	if i := strings.LastIndex(msg, ".go:"); i >= 0 {
		start := strings.LastIndex(msg[:i], " ") + 1
		msg = msg[start:]
	}
	parts := strings.SplitN(msg, ":", 4)
	if len(parts) >= 3 {
		var line, col int
		fmt.Sscanf(parts[1], "%d", &line)
		fmt.Sscanf(parts[2], "%d", &col)
		if line > 0 {
			e.Location = &Location{File: parts[0], Line: line, Column: col}
		}
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CodedError) WithSuggestion(s string) *CodedError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *CodedError) WithDetail(d string) *CodedError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CodedError) Wrap(err error) *CodedError {
	e.Wrapped = err
	return e
}

// New creates a CodedError from a registered error code.
func New(code string) *CodedError {
	template, ok := registry[code]
	if !ok {
		return &CodedError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CodedError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a CodedError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *CodedError {
	return &CodedError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err in a CodedError with code, unless it already is one.
func FromError(err error, code string) *CodedError {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if stderrors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}

// FromBuildError converts an error returned by routeconfig.Build.
// Errors of other kinds become E174.
func FromBuildError(err error) *CodedError {
	if err == nil {
		return nil
	}

	var (
		invalid   *routeconfig.InvalidSegmentError
		ambiguous *routeconfig.AmbiguousParameterNameError
		duplicate *routeconfig.DuplicateRouteError
	)
	switch {
	case stderrors.As(err, &invalid):
		return New("E170").
			Wrap(err).
			WithPath(routeconfig.FormatPath(invalid.Path)).
			WithSuggestion("Use [name] for a parameter, [[name]] for an optional parameter, or [...name] for a wildcard")
	case stderrors.As(err, &ambiguous):
		return New("E171").
			Wrap(err).
			WithPath(routeconfig.FormatPath(ambiguous.Path)).
			WithSuggestion(fmt.Sprintf("Keep one of %s in this directory and rename the other", strings.Join(ambiguous.Markers, ", ")))
	case stderrors.As(err, &duplicate):
		return New("E172").
			Wrap(err).
			WithPath(routeconfig.FormatPath(duplicate.Path)).
			WithSuggestion("Remove one of the files that map to " + duplicate.Route)
	}
	return FromError(err, "E174")
}
