package routeconfig

// ResolveTitle returns the title of a node from its layout and view exports.
// A view title takes precedence over a layout title at the same node.
func ResolveTitle(layout, view *FileRef) (string, bool) {
	if view != nil {
		if title, ok := view.Exports.Title(); ok {
			return title, true
		}
	}
	if layout != nil {
		if title, ok := layout.Exports.Title(); ok {
			return title, true
		}
	}
	return "", false
}
