package routeconfig

import "testing"

func TestResolveTitle(t *testing.T) {
	layout := &FileRef{Path: "@layout", Exports: Exports{"title": "Layout"}}
	view := &FileRef{Path: "view", Exports: Exports{"title": "View"}}
	bare := &FileRef{Path: "bare", Exports: Exports{"other": 1}}
	nonString := &FileRef{Path: "odd", Exports: Exports{"title": 42}}

	tests := []struct {
		name      string
		layout    *FileRef
		view      *FileRef
		wantTitle string
		wantOK    bool
	}{
		{"nothing", nil, nil, "", false},
		{"view only", nil, view, "View", true},
		{"layout only", layout, nil, "Layout", true},
		{"view wins over layout", layout, view, "View", true},
		{"untitled view falls back to layout", layout, bare, "Layout", true},
		{"untitled view and no layout", nil, bare, "", false},
		{"non-string title ignored", nil, nonString, "", false},
		{"nil exports", &FileRef{Path: "x"}, nil, "", false},
		{"empty title is still a title", nil, &FileRef{Exports: Exports{"title": ""}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := ResolveTitle(tt.layout, tt.view)
			if title != tt.wantTitle || ok != tt.wantOK {
				t.Errorf("ResolveTitle() = (%q, %v), want (%q, %v)", title, ok, tt.wantTitle, tt.wantOK)
			}
		})
	}
}
