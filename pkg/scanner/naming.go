package scanner

import (
	"regexp"
	"strings"
)

var (
	optionalParamRe      = regexp.MustCompile(`^\[\[(\w+)\]\]$`)
	catchAllRe           = regexp.MustCompile(`^\[\.\.\.(\w*)\]$`)
	paramRe              = regexp.MustCompile(`^\[(\w+)(?::\w+)?\]$`)
	underscoreCatchAllRe = regexp.MustCompile(`^_([A-Za-z0-9]\w*?)___$`)
	underscoreParamRe    = regexp.MustCompile(`^_([A-Za-z0-9]\w*?)_$`)
)

// Special file names (without the .go extension).
const (
	layoutName       = "layout"
	legacyLayoutName = "_layout"
	indexName        = "index"
)

// SegmentFromName converts a file or directory name (without extension) to a
// route segment:
//
//	[id], [id:int], _id_  → :id
//	[[tab]]               → :tab?
//	[...slug], _slug___   → *
//	anything else         → unchanged
func SegmentFromName(name string) string {
	if m := optionalParamRe.FindStringSubmatch(name); m != nil {
		return ":" + m[1] + "?"
	}
	if catchAllRe.MatchString(name) {
		return "*"
	}
	if m := paramRe.FindStringSubmatch(name); m != nil {
		return ":" + m[1]
	}
	if underscoreCatchAllRe.MatchString(name) {
		return "*"
	}
	if m := underscoreParamRe.FindStringSubmatch(name); m != nil {
		return ":" + m[1]
	}
	return name
}

// isLayoutFile reports whether base (without extension) names a layout file.
func isLayoutFile(base string) bool {
	return base == layoutName || base == legacyLayoutName
}

// isIgnoredName reports whether a file or directory is skipped by the scanner.
// Names starting with "." are hidden; names starting with "_" are reserved
// unless they use the underscore parameter notation.
func isIgnoredName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if name == "testdata" || name == "node_modules" {
		return true
	}
	if strings.HasPrefix(name, "_") {
		return !underscoreParamRe.MatchString(name) && !underscoreCatchAllRe.MatchString(name)
	}
	return false
}
