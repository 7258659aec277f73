package scanner

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the manifest format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown manifest format for %s (want .json, .yaml or .yml)", path)
}

// manifestNode is the serialized form of routeconfig.Metadata.
// A missing children key means no directory; an empty list means an empty one.
type manifestNode struct {
	Segment  string          `json:"segment" yaml:"segment"`
	Layout   *manifestFile   `json:"layout,omitempty" yaml:"layout,omitempty"`
	View     *manifestFile   `json:"view,omitempty" yaml:"view,omitempty"`
	Children *[]manifestNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type manifestFile struct {
	Path    string         `json:"path" yaml:"path"`
	Exports map[string]any `json:"exports,omitempty" yaml:"exports,omitempty"`
}

// DecodeManifest reads a metadata tree written by an external scanner.
// The top-level value is the root node.
func DecodeManifest(r io.Reader, format Format) (*routeconfig.Metadata, error) {
	var root manifestNode
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("decoding JSON manifest: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("decoding YAML manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return root.metadata(), nil
}

// EncodeManifest writes a metadata tree in the format DecodeManifest reads.
func EncodeManifest(w io.Writer, root *routeconfig.Metadata, format Format) error {
	node := toManifest(root)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(node)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported manifest format %q", format)
}

func (n *manifestNode) metadata() *routeconfig.Metadata {
	m := &routeconfig.Metadata{
		Segment: n.Segment,
		Layout:  n.Layout.fileRef(),
		View:    n.View.fileRef(),
	}
	if n.Children != nil {
		m.Dir = true
		for i := range *n.Children {
			m.Children = append(m.Children, (*n.Children)[i].metadata())
		}
	}
	return m
}

func (f *manifestFile) fileRef() *routeconfig.FileRef {
	if f == nil {
		return nil
	}
	exports := routeconfig.Exports{}
	for k, v := range f.Exports {
		exports[k] = v
	}
	return &routeconfig.FileRef{Path: f.Path, Exports: exports}
}

func toManifest(m *routeconfig.Metadata) manifestNode {
	n := manifestNode{
		Segment: m.Segment,
		Layout:  toManifestFile(m.Layout),
		View:    toManifestFile(m.View),
	}
	if m.HasSubdir() {
		children := make([]manifestNode, 0, len(m.Children))
		for _, child := range m.Children {
			if child != nil {
				children = append(children, toManifest(child))
			}
		}
		n.Children = &children
	}
	return n
}

func toManifestFile(ref *routeconfig.FileRef) *manifestFile {
	if ref == nil {
		return nil
	}
	return &manifestFile{Path: ref.Path, Exports: ref.Exports}
}
