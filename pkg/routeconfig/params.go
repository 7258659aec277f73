package routeconfig

import (
	"maps"
	"slices"
)

// Params maps the parameter markers visible at a route to their types.
// The zero value is empty. Params is never modified in place; With returns a copy.
type Params struct {
	m map[string]ParamType
}

// With returns p extended with marker.
func (p Params) With(marker string, typ ParamType) Params {
	m := make(map[string]ParamType, len(p.m)+1)
	maps.Copy(m, p.m)
	m[marker] = typ
	return Params{m: m}
}

// Len returns the number of markers.
func (p Params) Len() int {
	return len(p.m)
}

// Get returns the type registered for marker.
func (p Params) Get(marker string) (ParamType, bool) {
	typ, ok := p.m[marker]
	return typ, ok
}

// Markers returns the markers in lexical order.
func (p Params) Markers() []string {
	return slices.Sorted(maps.Keys(p.m))
}

// Map returns a copy of the markers and their types. It is never nil.
func (p Params) Map() map[string]ParamType {
	m := make(map[string]ParamType, len(p.m))
	maps.Copy(m, p.m)
	return m
}

// markerNamed returns the non-wildcard marker whose parameter name is name.
func (p Params) markerNamed(name string) (string, bool) {
	for marker, typ := range p.m {
		if typ == Wildcard {
			continue
		}
		seg := Segment{Route: marker, Param: typ}
		if seg.Name() == name {
			return marker, true
		}
	}
	return "", false
}
