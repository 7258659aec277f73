// Package errors provides coded, actionable error messages for the fileroutes
// CLI.
//
// Each error has a code (e.g. "E171") registered with a category, a short
// message, a longer explanation and a documentation URL. Errors can carry the
// route path and source location they concern, a suggestion, and the
// underlying error.
//
// # Usage
//
//	err := errors.New("E170").
//	    WithPath("/users/a:b").
//	    WithSuggestion("Rename the file to [id].go")
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E170: Invalid route segment
//	//
//	//   route /users/a:b
//	//
//	//   Hint: Rename the file to [id].go
//
// FromBuildError converts the errors returned by routeconfig.Build into
// coded errors.
package errors
