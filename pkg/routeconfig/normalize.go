package routeconfig

import "errors"

// Build normalizes the tree below root and returns its top-level routes.
//
// root is the synthetic views directory: its segment, layout and view are not
// emitted. Build fails on the first malformed or conflicting segment and
// returns no routes in that case.
func Build(root *Metadata) ([]*RouteConfig, error) {
	if root == nil {
		return []*RouteConfig{}, nil
	}
	routes, err := normalizeChildren(root, Params{}, nil)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []*RouteConfig{}
	}
	return routes, nil
}

// normalize returns the route for node, or nil if the node has no content and
// nothing routable below it.
func normalize(node *Metadata, inherited Params, parent []string) (*RouteConfig, error) {
	path := appendPath(parent, node.Segment)

	seg, err := ClassifySegment(node.Segment)
	if err != nil {
		var invalid *InvalidSegmentError
		if errors.As(err, &invalid) {
			invalid.Path = path
		}
		return nil, err
	}

	params := inherited
	if seg.IsParam() {
		if seg.Param != Wildcard {
			if marker, ok := inherited.markerNamed(seg.Name()); ok {
				return nil, &AmbiguousParameterNameError{Path: path, Markers: []string{marker, seg.Route}}
			}
		}
		params = inherited.With(seg.Route, seg.Param)
	}

	children, err := normalizeChildren(node, params, path)
	if err != nil {
		return nil, err
	}

	hasContent := node.Layout != nil || node.View != nil || node.isIndexFile()
	if !hasContent && len(children) == 0 {
		return nil, nil
	}

	rc := &RouteConfig{
		route:    seg.Route,
		param:    seg.Param,
		params:   params,
		children: newSubtree(node.HasSubdir(), children),
	}
	rc.title, rc.hasTitle = ResolveTitle(node.Layout, node.View)
	return rc, nil
}

// normalizeChildren normalizes the directory entries of node in order and
// drops the pruned ones.
func normalizeChildren(node *Metadata, params Params, path []string) ([]*RouteConfig, error) {
	if !node.HasSubdir() {
		return nil, nil
	}

	var (
		routes      []*RouteConfig
		seen        = make(map[string]struct{}, len(node.Children))
		paramMarker string
	)
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		rc, err := normalize(child, params, path)
		if err != nil {
			return nil, err
		}
		if rc == nil {
			continue
		}

		if _, dup := seen[rc.route]; dup {
			return nil, &DuplicateRouteError{Path: appendPath(path, rc.route), Route: rc.route}
		}
		seen[rc.route] = struct{}{}

		if rc.param == Required || rc.param == Optional {
			if paramMarker != "" {
				return nil, &AmbiguousParameterNameError{
					Path:    appendPath(path, rc.route),
					Markers: []string{paramMarker, rc.route},
				}
			}
			paramMarker = rc.route
		}

		routes = append(routes, rc)
	}
	return routes, nil
}

func appendPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}
