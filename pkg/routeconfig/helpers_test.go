package routeconfig

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func titled(path, title string) *FileRef {
	return &FileRef{Path: path, Exports: Exports{ExportTitle: title}}
}

func untitled(path string) *FileRef {
	return &FileRef{Path: path, Exports: Exports{}}
}

func dir(segment string, children ...*Metadata) *Metadata {
	return &Metadata{Segment: segment, Dir: true, Children: children}
}

func leaf(segment string, view *FileRef) *Metadata {
	return &Metadata{Segment: segment, View: view}
}

func mustBuild(t *testing.T, root *Metadata) []*RouteConfig {
	t.Helper()
	routes, err := Build(root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return routes
}

// assertJSON compares two JSON documents structurally.
func assertJSON(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, got)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("expected document is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(w, g); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}
