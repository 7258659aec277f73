// Package scanner discovers views on disk and describes them as a
// routeconfig.Metadata tree.
//
// # File Structure Convention
//
//	app/views/
//	├── about.go             → about
//	├── layout.go            → layout of the root directory
//	├── profile/
//	│   ├── index.go         → "" (index of /profile)
//	│   └── friends/
//	│       ├── layout.go    → layout of /profile/friends
//	│       ├── list.go      → list
//	│       └── [user].go    → :user
//	└── docs/
//	    ├── [[section]].go   → :section?
//	    └── [...rest].go     → *
//
// The underscore notation is accepted as well: _id_.go → :id and
// _rest___.go → *.
//
// # Exports
//
// Each view and layout file is parsed with go/parser and its exported string
// constants and variables become exports, keyed by the lower-cased name:
//
//	const Title = "About"                         // title: About
//	var Config = views.Config{Title: "About"}     // title: About
//
// Declaration order in the file does not matter.
package scanner
