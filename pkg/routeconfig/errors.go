package routeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrInvalidSegment         = errors.New("invalid route segment")
	ErrAmbiguousParameterName = errors.New("ambiguous parameter name")
	ErrDuplicateRoute         = errors.New("duplicate route")
)

// InvalidSegmentError reports malformed parameter marker syntax.
type InvalidSegmentError struct {
	// Path is the sequence of segments from the root, ending with the offending one.
	Path []string

	// Segment is the raw segment text.
	Segment string

	// Reason describes what is wrong with the segment.
	Reason string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("invalid segment %q at %s: %s", e.Segment, FormatPath(e.Path), e.Reason)
}

// Is reports whether target is ErrInvalidSegment.
func (e *InvalidSegmentError) Is(target error) bool {
	return target == ErrInvalidSegment
}

// AmbiguousParameterNameError reports parameters the router cannot tell apart:
// sibling parameter segments with different markers, or a segment reusing the
// name of an ancestor parameter.
type AmbiguousParameterNameError struct {
	// Path is the sequence of segments from the root to the later declaration.
	Path []string

	// Markers are the conflicting markers, first declaration first.
	Markers []string
}

func (e *AmbiguousParameterNameError) Error() string {
	return fmt.Sprintf("ambiguous parameters %s at %s", strings.Join(e.Markers, " and "), FormatPath(e.Path))
}

// Is reports whether target is ErrAmbiguousParameterName.
func (e *AmbiguousParameterNameError) Is(target error) bool {
	return target == ErrAmbiguousParameterName
}

// DuplicateRouteError reports two siblings that resolve to the same route text.
type DuplicateRouteError struct {
	// Path is the sequence of segments from the root to the duplicated route.
	Path []string

	// Route is the duplicated route text.
	Route string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route %q at %s", e.Route, FormatPath(e.Path))
}

// Is reports whether target is ErrDuplicateRoute.
func (e *DuplicateRouteError) Is(target error) bool {
	return target == ErrDuplicateRoute
}

// FormatPath joins segments into a URL template, e.g. "/friends/:user".
func FormatPath(path []string) string {
	return "/" + strings.Join(path, "/")
}
