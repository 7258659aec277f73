// Package dev provides the watch-and-regenerate development server.
//
// This package implements:
//   - File watching of the views directory with fsnotify
//   - Debounced regeneration of the route document
//   - WebSocket notifications of regenerated documents and build errors
//   - HTTP access to the last good document, health and metrics
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{
//	    Config:  cfg,
//	    Builder: build.New(cfg, build.Options{}),
//	})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
//	GET /routes.json          last good route document
//	GET /healthz              build status
//	GET /metrics              Prometheus metrics
//	GET /_fileroutes/reload   WebSocket stream
//
// # Reload Protocol
//
// Messages are JSON-encoded. A client receives the latest message on connect.
//
//	{"type": "routes", "routes": [...]}           // Document regenerated
//	{"type": "error", "code": "E172", "error": "..."} // Build failed
package dev
