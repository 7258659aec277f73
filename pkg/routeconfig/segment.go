package routeconfig

import (
	"fmt"
	"strings"
)

// ParamType classifies a parameterized segment.
type ParamType uint8

const (
	// Required is a ":name" segment.
	Required ParamType = iota + 1
	// Optional is a ":name?" segment.
	Optional
	// Wildcard is the "*" segment.
	Wildcard
)

// String returns the wire name of the type.
func (t ParamType) String() string {
	switch t {
	case Required:
		return "Required"
	case Optional:
		return "Optional"
	case Wildcard:
		return "Wildcard"
	default:
		return fmt.Sprintf("ParamType(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ParamType) MarshalText() ([]byte, error) {
	switch t {
	case Required, Optional, Wildcard:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("routeconfig: cannot marshal %s", t)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ParamType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Required":
		*t = Required
	case "Optional":
		*t = Optional
	case "Wildcard":
		*t = Wildcard
	default:
		return fmt.Errorf("routeconfig: unknown param type %q", text)
	}
	return nil
}

// Segment is a classified path component.
type Segment struct {
	// Route is the segment text as it appears in the URL template.
	Route string

	// Param is the parameter type, or zero for static segments.
	Param ParamType
}

// IsParam reports whether the segment is parameterized.
func (s Segment) IsParam() bool {
	return s.Param != 0
}

// Name returns the parameter name without its markers.
// Static segments return "" and the wildcard returns "*".
func (s Segment) Name() string {
	switch s.Param {
	case Required:
		return s.Route[1:]
	case Optional:
		return s.Route[1 : len(s.Route)-1]
	case Wildcard:
		return "*"
	}
	return ""
}

// ClassifySegment maps a raw segment to its route text and parameter type.
//
// "*" is a wildcard, a leading ":" starts a parameter (optional when it ends
// with "?"), and anything else is static, including the empty index segment.
func ClassifySegment(raw string) (Segment, error) {
	if raw == "*" {
		return Segment{Route: raw, Param: Wildcard}, nil
	}

	if name, ok := strings.CutPrefix(raw, ":"); ok {
		typ := Required
		if trimmed, ok := strings.CutSuffix(name, "?"); ok {
			name = trimmed
			typ = Optional
		}
		if name == "" {
			return Segment{}, &InvalidSegmentError{Segment: raw, Reason: "parameter name is empty"}
		}
		if i := strings.IndexAny(name, ":?*/"); i >= 0 {
			return Segment{}, &InvalidSegmentError{
				Segment: raw,
				Reason:  fmt.Sprintf("unexpected %q in parameter name", name[i]),
			}
		}
		return Segment{Route: raw, Param: typ}, nil
	}

	if strings.Contains(raw, ":") {
		return Segment{}, &InvalidSegmentError{Segment: raw, Reason: "':' is only allowed as a leading parameter marker"}
	}
	if strings.Contains(raw, "/") {
		return Segment{}, &InvalidSegmentError{Segment: raw, Reason: "segment contains '/'"}
	}

	return Segment{Route: raw}, nil
}
