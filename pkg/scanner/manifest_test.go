package scanner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

const yamlManifest = `
segment: ""
children:
  - segment: about
    view:
      path: about.go
      exports:
        title: About
  - segment: layout-only
    layout:
      path: layout-only/layout.go
      exports:
        title: Layout Only
    children: []
  - segment: friends
    children:
      - segment: ":user"
        view:
          path: friends/[user].go
`

func TestDecodeManifestYAML(t *testing.T) {
	root, err := DecodeManifest(strings.NewReader(yamlManifest), FormatYAML)
	if err != nil {
		t.Fatalf("DecodeManifest() error = %v", err)
	}

	routes, err := routeconfig.Build(root)
	if err != nil {
		t.Fatal(err)
	}
	data, err := routeconfig.Marshal(routes)
	if err != nil {
		t.Fatal(err)
	}

	want := `[{"route":"about","title":"About","params":{}},` +
		`{"route":"layout-only","title":"Layout Only","params":{},"children":[]},` +
		`{"route":"friends","params":{},"children":[{"route":":user","params":{":user":"Required"}}]}]`
	if string(data) != want {
		t.Errorf("document =\n%s\nwant\n%s", data, want)
	}
}

func TestDecodeManifestJSON(t *testing.T) {
	const doc = `{"segment":"","children":[
		{"segment":"leaf","view":{"path":"leaf.go"}},
		{"segment":"dir","children":[]}
	]}`

	root, err := DecodeManifest(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Dir || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	if root.Children[0].HasSubdir() {
		t.Error("leaf without children key must have no subdirectory")
	}
	if !root.Children[1].HasSubdir() {
		t.Error("empty children list must mark a directory")
	}
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{"unknown JSON field", `{"segment":"","kids":[]}`, FormatJSON},
		{"unknown YAML field", "segment: x\nkids: []\n", FormatYAML},
		{"bad JSON", `{`, FormatJSON},
		{"unsupported format", `{}`, Format("toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeManifest(strings.NewReader(tt.doc), tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestManifestRoundTripPreservesSubtreeStates(t *testing.T) {
	root := &routeconfig.Metadata{Dir: true, Children: []*routeconfig.Metadata{
		{Segment: "leaf", View: &routeconfig.FileRef{Path: "leaf.go", Exports: routeconfig.Exports{"title": "Leaf"}}},
		{Segment: "empty", Layout: &routeconfig.FileRef{Path: "empty/layout.go"}, Dir: true},
	}}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeManifest(&buf, root, format); err != nil {
				t.Fatal(err)
			}
			back, err := DecodeManifest(&buf, format)
			if err != nil {
				t.Fatalf("DecodeManifest() error = %v\n%s", err, buf.String())
			}
			if back.Children[0].HasSubdir() {
				t.Error("leaf gained a subdirectory")
			}
			if !back.Children[1].HasSubdir() {
				t.Error("empty directory was lost")
			}
			if title, _ := back.Children[0].View.Exports.Title(); title != "Leaf" {
				t.Errorf("title = %q", title)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"routes.json": FormatJSON,
		"routes.yaml": FormatYAML,
		"routes.YML":  FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("routes.toml"); err == nil {
		t.Error("expected error for .toml")
	}
}
