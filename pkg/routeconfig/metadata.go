package routeconfig

// ExportTitle is the export name read by the title resolver.
const ExportTitle = "title"

// Exports are the named values a layout or view file exports.
// Only ExportTitle is interpreted; other entries are carried along untouched.
type Exports map[string]any

// Title returns the string title export, if any.
func (e Exports) Title() (string, bool) {
	v, ok := e[ExportTitle]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// FileRef references a layout or view file discovered by the scanner.
type FileRef struct {
	// Path is the source file path, relative to the views directory.
	Path string

	// Exports are the exports read from the file.
	Exports Exports
}

// Metadata is one node of the discovered view tree.
// Build only reads it.
type Metadata struct {
	// Segment is the path component (e.g. "about", ":id", "*", or "" for an index).
	Segment string

	// Layout is the layout file of the directory, if any.
	Layout *FileRef

	// View is the view file for this segment, if any.
	View *FileRef

	// Dir reports that a directory exists for this segment, even if it is empty.
	Dir bool

	// Children are the entries of the directory in listing order.
	Children []*Metadata
}

// HasSubdir reports whether a directory exists below this node.
func (m *Metadata) HasSubdir() bool {
	return m.Dir || len(m.Children) > 0
}

// isIndexFile reports whether the node is the index view of its parent directory.
func (m *Metadata) isIndexFile() bool {
	return m.Segment == "" && !m.HasSubdir()
}
