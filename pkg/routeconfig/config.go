package routeconfig

import "slices"

// SubtreeKind is the state of a route's children.
type SubtreeKind uint8

const (
	// NoSubtree means no directory exists below the route.
	NoSubtree SubtreeKind = iota
	// EmptySubtree means a directory exists but contains nothing routable.
	EmptySubtree
	// PopulatedSubtree means the directory produced at least one route.
	PopulatedSubtree
)

func (k SubtreeKind) String() string {
	switch k {
	case NoSubtree:
		return "none"
	case EmptySubtree:
		return "empty"
	case PopulatedSubtree:
		return "populated"
	}
	return "unknown"
}

// Subtree holds the children of a route.
type Subtree struct {
	kind   SubtreeKind
	routes []*RouteConfig
}

func newSubtree(dir bool, routes []*RouteConfig) Subtree {
	switch {
	case !dir:
		return Subtree{kind: NoSubtree}
	case len(routes) == 0:
		return Subtree{kind: EmptySubtree}
	default:
		return Subtree{kind: PopulatedSubtree, routes: routes}
	}
}

// Kind returns the subtree state.
func (s Subtree) Kind() SubtreeKind {
	return s.kind
}

// Routes returns the child routes in source order.
func (s Subtree) Routes() []*RouteConfig {
	return slices.Clone(s.routes)
}

// Len returns the number of child routes.
func (s Subtree) Len() int {
	return len(s.routes)
}

// RouteConfig is one normalized route. It is immutable once built.
type RouteConfig struct {
	route    string
	param    ParamType
	title    string
	hasTitle bool
	params   Params
	children Subtree
}

// Route returns the URL template segment, markers included.
func (rc *RouteConfig) Route() string {
	return rc.route
}

// Param returns the route's own parameter type, or zero for static routes.
func (rc *RouteConfig) Param() ParamType {
	return rc.param
}

// Title returns the resolved title, if any.
func (rc *RouteConfig) Title() (string, bool) {
	return rc.title, rc.hasTitle
}

// Params returns the parameters visible at this route, its own included.
func (rc *RouteConfig) Params() Params {
	return rc.params
}

// Children returns the route's subtree.
func (rc *RouteConfig) Children() Subtree {
	return rc.children
}

// Walk calls fn for every route in depth-first order, parents before children.
// depth is 0 for the routes passed in. Walk stops when fn returns false.
func Walk(routes []*RouteConfig, fn func(rc *RouteConfig, depth int) bool) {
	walk(routes, 0, fn)
}

func walk(routes []*RouteConfig, depth int, fn func(*RouteConfig, int) bool) bool {
	for _, rc := range routes {
		if !fn(rc, depth) {
			return false
		}
		if !walk(rc.children.routes, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of routes in the tree.
func Count(routes []*RouteConfig) int {
	n := 0
	Walk(routes, func(*RouteConfig, int) bool {
		n++
		return true
	})
	return n
}
