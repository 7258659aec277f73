package routeconfig

import "testing"

// fixtureTree mirrors a views directory exercising every output shape:
//
//	about.go
//	profile/index.go, profile/account/layout.go, profile/account/security/...
//	profile/friends/layout.go, profile/friends/list.go, profile/friends/[user].go
//	test/...
//	layout-only/layout.go, layout-only/empty/
func fixtureTree() *Metadata {
	return dir("",
		leaf("about", titled("about.go", "About")),
		dir("profile",
			leaf("", titled("profile/index.go", "Profile")),
			&Metadata{
				Segment: "account",
				Layout:  titled("profile/account/layout.go", "Account"),
				Dir:     true,
				Children: []*Metadata{
					dir("security",
						leaf("password", titled("profile/account/security/password.go", "Password")),
						leaf("two-factor-auth", titled("profile/account/security/two-factor-auth.go", "Two Factor Auth")),
					),
				},
			},
			&Metadata{
				Segment: "friends",
				Layout:  titled("profile/friends/layout.go", "Friends Layout"),
				Dir:     true,
				Children: []*Metadata{
					leaf("list", titled("profile/friends/list.go", "List")),
					leaf(":user", titled("profile/friends/[user].go", "User")),
				},
			},
		),
		dir("test",
			leaf("", titled("test/index.go", "Index")),
			leaf(":optional?", titled("test/[[optional]].go", "Optional")),
			leaf("*", titled("test/[...wildcard].go", "Wildcard")),
			leaf("no-default-export", titled("test/no-default-export.go", "No Default Export")),
			dir("empty-dir"),
			dir("issue-002378",
				dir(":requiredParam",
					leaf("edit", titled("test/issue-002378/[requiredParam]/edit.go", "Edit")),
				),
			),
			&Metadata{
				Segment: "issue-002571-empty-layout",
				Layout:  untitled("test/issue-002571-empty-layout/layout.go"),
				Dir:     true,
			},
			leaf("issue-002879-config-below", titled("test/issue-002879-config-below.go", "Config Below")),
		),
		&Metadata{
			Segment:  "layout-only",
			Layout:   titled("layout-only/layout.go", "Layout Only"),
			Dir:      true,
			Children: []*Metadata{dir("empty")},
		},
	)
}

const fixtureJSON = `[
  {"route": "about", "title": "About", "params": {}},
  {
    "route": "profile",
    "params": {},
    "children": [
      {"route": "", "title": "Profile", "params": {}},
      {
        "route": "account",
        "title": "Account",
        "params": {},
        "children": [
          {
            "route": "security",
            "params": {},
            "children": [
              {"route": "password", "title": "Password", "params": {}},
              {"route": "two-factor-auth", "title": "Two Factor Auth", "params": {}}
            ]
          }
        ]
      },
      {
        "route": "friends",
        "title": "Friends Layout",
        "params": {},
        "children": [
          {"route": "list", "title": "List", "params": {}},
          {"route": ":user", "title": "User", "params": {":user": "Required"}}
        ]
      }
    ]
  },
  {
    "route": "test",
    "params": {},
    "children": [
      {"route": "", "title": "Index", "params": {}},
      {"route": ":optional?", "title": "Optional", "params": {":optional?": "Optional"}},
      {"route": "*", "title": "Wildcard", "params": {"*": "Wildcard"}},
      {"route": "no-default-export", "title": "No Default Export", "params": {}},
      {
        "route": "issue-002378",
        "params": {},
        "children": [
          {
            "route": ":requiredParam",
            "params": {":requiredParam": "Required"},
            "children": [
              {"route": "edit", "title": "Edit", "params": {":requiredParam": "Required"}}
            ]
          }
        ]
      },
      {"route": "issue-002571-empty-layout", "params": {}, "children": []},
      {"route": "issue-002879-config-below", "title": "Config Below", "params": {}}
    ]
  },
  {"route": "layout-only", "title": "Layout Only", "params": {}, "children": []}
]`

func TestFixtureDocument(t *testing.T) {
	routes := mustBuild(t, fixtureTree())

	data, err := MarshalIndent(routes, "  ")
	if err != nil {
		t.Fatal(err)
	}
	assertJSON(t, data, fixtureJSON)
}

func BenchmarkBuildAndMarshal(b *testing.B) {
	root := fixtureTree()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		routes, err := Build(root)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Marshal(routes); err != nil {
			b.Fatal(err)
		}
	}
}
