package scanner

import (
	"slices"
	"testing"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

func TestSegmentFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"about", "about"},
		{"[id]", ":id"},
		{"[id:int]", ":id"},
		{"[[tab]]", ":tab?"},
		{"[...slug]", "*"},
		{"[...]", "*"},
		{"_id_", ":id"},
		{"_user_id_", ":user_id"},
		{"_slug___", "*"},
		{"issue-002378", "issue-002378"},
		{":raw", ":raw"},
		{"a:b", "a:b"},
		{"[bad", "[bad"},
	}

	for _, tt := range tests {
		if got := SegmentFromName(tt.name); got != tt.want {
			t.Errorf("SegmentFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsIgnoredName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"about", false},
		{".git", true},
		{"testdata", true},
		{"_components", true},
		{"_layout", true},
		{"_id_", false},
		{"_slug___", false},
	}
	for _, tt := range tests {
		if got := isIgnoredName(tt.name); got != tt.want {
			t.Errorf("isIgnoredName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSortSiblings(t *testing.T) {
	nodes := []*routeconfig.Metadata{
		{Segment: "*"},
		{Segment: ":opt?"},
		{Segment: "zeta"},
		{Segment: ":id"},
		{Segment: ""},
		{Segment: "alpha"},
		{Segment: "a:b"},
	}
	SortSiblings(nodes)

	got := segments(nodes)
	want := []string{"", "a:b", "alpha", "zeta", ":id", ":opt?", "*"}
	if !slices.Equal(got, want) {
		t.Errorf("SortSiblings() = %q, want %q", got, want)
	}
}
