// Package routeconfig builds the client route configuration from a discovered
// view tree.
//
// The input is a Metadata tree produced by a file-system scanner: one node per
// directory or view file, with optional layout and view references carrying
// the exports read from those files. Build turns that tree into RouteConfig
// nodes and Marshal writes them as the JSON document consumed by the client
// router.
//
// # Segments
//
// Each node's segment is classified before it is emitted:
//
//	about       → static, route "about"
//	""          → static index route
//	:user       → required parameter
//	:tab?       → optional parameter
//	*           → wildcard
//
// Parameterized segments keep their marker text as the route and register
// that marker in the params of the node and of every descendant.
//
// # Children
//
// The children key of the output has three states that consumers rely on:
//
//	absent      the node is a view file with no directory below it
//	[]          a directory exists but nothing in it is routable
//	[...]       the routable entries of the directory, in source order
//
// Internally this is the Subtree type; the three shapes only appear at the
// JSON boundary.
//
// # Usage
//
//	routes, err := routeconfig.Build(root)
//	if err != nil {
//	    return err
//	}
//	doc, err := routeconfig.MarshalIndent(routes, "  ")
//
// Build and Marshal perform no I/O and keep no state between calls, so
// concurrent builds of different trees are independent.
package routeconfig
