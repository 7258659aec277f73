package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// writeViews creates files under dir. A path ending in "/" creates an empty directory.
func writeViews(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func view(title string) string {
	if title == "" {
		return "package views\n\nfunc Page() {}\n"
	}
	return "package views\n\nconst Title = \"" + title + "\"\n\nfunc Page() {}\n"
}

func segments(nodes []*routeconfig.Metadata) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Segment
	}
	return out
}

func find(t *testing.T, nodes []*routeconfig.Metadata, segment string) *routeconfig.Metadata {
	t.Helper()
	for _, n := range nodes {
		if n.Segment == segment {
			return n
		}
	}
	t.Fatalf("segment %q not found in %q", segment, segments(nodes))
	return nil
}

func TestScanTree(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{
		"about.go":                        view("About"),
		"layout.go":                       view("Root"),
		"profile/index.go":                view("Profile"),
		"profile/friends/layout.go":       view("Friends Layout"),
		"profile/friends/list.go":         view("List"),
		"profile/friends/[user].go":       view("User"),
		"profile/friends/list_test.go":    "package views\n",
		"docs/[[section]].go":             view("Section"),
		"docs/[...rest].go":               view("Rest"),
		"docs/README.md":                  "# docs",
		"layout-only/layout.go":           view("Layout Only"),
		"layout-only/empty/":              "",
		".hidden/secret.go":               view("Secret"),
		"_components/button.go":           view(""),
		"users/_id_/edit.go":              view("Edit"),
	})

	root, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !root.Dir {
		t.Error("root must be a directory")
	}
	if root.Layout == nil || root.Layout.Path != "layout.go" {
		t.Errorf("root layout = %+v", root.Layout)
	}

	got := strings.Join(segments(root.Children), ",")
	if want := "about,docs,layout-only,profile,users"; got != want {
		t.Errorf("root children = %s, want %s", got, want)
	}

	profile := find(t, root.Children, "profile")
	index := find(t, profile.Children, "")
	if index.View == nil || index.View.Path != "profile/index.go" {
		t.Errorf("profile index view = %+v", index.View)
	}
	if title, _ := index.View.Exports.Title(); title != "Profile" {
		t.Errorf("profile index title = %q", title)
	}

	friends := find(t, profile.Children, "friends")
	if title, _ := friends.Layout.Exports.Title(); title != "Friends Layout" {
		t.Errorf("friends layout title = %q", title)
	}
	if got := strings.Join(segments(friends.Children), ","); got != "list,:user" {
		t.Errorf("friends children = %s", got)
	}
	if user := find(t, friends.Children, ":user"); user.HasSubdir() {
		t.Error(":user is a file and must not have a subdirectory")
	}

	docs := find(t, root.Children, "docs")
	if got := strings.Join(segments(docs.Children), ","); got != ":section?,*" {
		t.Errorf("docs children = %s", got)
	}

	layoutOnly := find(t, root.Children, "layout-only")
	empty := find(t, layoutOnly.Children, "empty")
	if !empty.Dir || len(empty.Children) != 0 {
		t.Errorf("empty dir = %+v", empty)
	}

	users := find(t, root.Children, "users")
	id := find(t, users.Children, ":id")
	find(t, id.Children, "edit")
}

func TestScanMergesViewWithDirectory(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{
		"users.go":      view("Users"),
		"users/[id].go": view("User"),
	})

	root, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("children = %q, want one merged node", segments(root.Children))
	}
	users := root.Children[0]
	if users.View == nil || users.View.Path != "users.go" {
		t.Errorf("users view = %+v", users.View)
	}
	if !users.HasSubdir() || len(users.Children) != 1 {
		t.Errorf("users children = %q", segments(users.Children))
	}
}

func TestScanUnsortedKeepsListingOrder(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{
		"[id].go":   view(""),
		"b/page.go": view(""),
		"a.go":      view(""),
	})

	root, err := NewScannerWithOptions(dir, ScanOptions{}).Scan()
	if err != nil {
		t.Fatal(err)
	}
	// os.ReadDir lists entries by file name.
	if got := strings.Join(segments(root.Children), ","); got != ":id,a,b" {
		t.Errorf("children = %s, want :id,a,b", got)
	}
}

func TestScanDuplicateLayout(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{
		"layout.go":  view(""),
		"_layout.go": view(""),
	})

	if _, err := NewScanner(dir).Scan(); err == nil {
		t.Fatal("expected error for two layout files")
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := NewScanner(filepath.Join(t.TempDir(), "missing")).Scan(); err == nil {
		t.Fatal("expected error for missing directory")
	}

	file := filepath.Join(t.TempDir(), "file.go")
	if err := os.WriteFile(file, []byte("package x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewScanner(file).Scan(); err == nil {
		t.Fatal("expected error for a file root")
	}
}

func TestScanSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{"broken.go": "package views\n\nfunc {"})

	_, err := NewScanner(dir).Scan()
	if err == nil || !strings.Contains(err.Error(), "broken.go") {
		t.Fatalf("Scan() error = %v, want error naming broken.go", err)
	}
}

func TestScanThenBuild(t *testing.T) {
	dir := t.TempDir()
	writeViews(t, dir, map[string]string{
		"about.go":                   view("About"),
		"friends/layout.go":          view("Friends"),
		"friends/[user].go":          view("User"),
		"friends/list.go":            view("List"),
		"test/issue-002571/layout.go": view(""),
	})

	root, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatal(err)
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
		`{"route":"friends","title":"Friends","params":{},"children":[` +
		`{"route":"list","title":"List","params":{}},` +
		`{"route":":user","title":"User","params":{":user":"Required"}}]},` +
		`{"route":"test","params":{},"children":[{"route":"issue-002571","params":{},"children":[]}]}]`
	if string(data) != want {
		t.Errorf("document =\n%s\nwant\n%s", data, want)
	}
}
