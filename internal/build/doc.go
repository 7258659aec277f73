// Package build generates the route document of a fileroutes project.
//
// This package handles:
//   - Reading the metadata tree, by scanning the views directory or by
//     decoding a manifest
//   - Normalizing it with routeconfig.Build
//   - Serializing the route document
//   - Writing the document when its content changed
//
// Each stage runs in an OpenTelemetry span and every build is recorded in
// Prometheus metrics when a Metrics instance is configured.
//
// # Usage
//
//	builder := build.New(cfg, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Built %d routes in %s\n", result.RouteCount, result.Duration)
package build
