package build

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	goscanner "go/scanner"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routeconfig"
	"github.com/vango-dev/fileroutes/pkg/scanner"
)

// Result contains the build output.
type Result struct {
	// Routes is the normalized route tree.
	Routes []*routeconfig.RouteConfig

	// Document is the serialized route document.
	Document []byte

	// Output is the path the document was written to, or "" if not written.
	Output string

	// Written reports whether the output file changed.
	Written bool

	// RouteCount is the number of routes at every depth.
	RouteCount int

	// Duration is how long the build took.
	Duration time.Duration
}

// Options configures the builder.
type Options struct {
	// Output overrides the configured output path.
	Output string

	// Manifest overrides the configured manifest path. When set, the
	// metadata tree is decoded from it instead of scanning the views.
	Manifest string

	// NoWrite skips writing the document.
	NoWrite bool

	// Cache is shared across builds to skip re-parsing unchanged files.
	Cache *scanner.ExportCache

	// Metrics records build outcomes. Nil disables metrics.
	Metrics *Metrics

	// TracerName names the OpenTelemetry tracer.
	TracerName string

	// Logger receives build progress. Default: slog.Default().
	Logger *slog.Logger
}

// Builder generates the route document.
type Builder struct {
	views    string
	manifest string
	output   string
	indent   string
	options  Options
	tracer   trace.Tracer
	logger   *slog.Logger
}

// New creates a new builder.
func New(cfg *config.Config, options Options) *Builder {
	b := &Builder{
		views:    cfg.ViewsPath(),
		manifest: cfg.ManifestPath(),
		output:   cfg.OutputPath(),
		indent:   cfg.DocumentIndent(),
		options:  options,
		tracer:   newTracer(options.TracerName),
		logger:   options.Logger,
	}
	if options.Output != "" {
		b.output = options.Output
	}
	if options.Manifest != "" {
		b.manifest = options.Manifest
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("component", "build")
	return b
}

// Views returns the scanned views directory.
func (b *Builder) Views() string {
	return b.views
}

// Output returns the document path.
func (b *Builder) Output() string {
	return b.output
}

// Build runs the pipeline once.
// No routes are returned when any stage fails.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	ctx, span := b.tracer.Start(ctx, "fileroutes.build",
		trace.WithAttributes(
			attribute.String("fileroutes.views", b.views),
			attribute.String("fileroutes.output", b.output),
		),
	)
	defer span.End()

	result, err := b.build(ctx)
	duration := time.Since(start)

	count := 0
	if result != nil {
		count = result.RouteCount
		result.Duration = duration
	}
	b.options.Metrics.observe(count, duration, err)
	recordResult(span, err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("fileroutes.route_count", result.RouteCount),
		attribute.Bool("fileroutes.written", result.Written),
	)
	b.logger.Debug("build complete",
		"routes", result.RouteCount,
		"written", result.Written,
		"duration", duration,
	)
	return result, nil
}

func (b *Builder) build(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var root *routeconfig.Metadata
	err := stage(ctx, b.tracer, "scan", func(_ context.Context, span trace.Span) error {
		var err error
		if b.manifest != "" {
			span.SetAttributes(attribute.String("fileroutes.manifest", b.manifest))
			root, err = b.readManifest()
		} else {
			root, err = b.scan()
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	var routes []*routeconfig.RouteConfig
	err = stage(ctx, b.tracer, "normalize", func(context.Context, trace.Span) error {
		var err error
		routes, err = routeconfig.Build(root)
		if err != nil {
			return errors.FromBuildError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Routes:     routes,
		RouteCount: routeconfig.Count(routes),
	}

	err = stage(ctx, b.tracer, "serialize", func(context.Context, trace.Span) error {
		var err error
		result.Document, err = routeconfig.MarshalIndent(routes, b.indent)
		if err != nil {
			return errors.New("E174").Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if b.options.NoWrite {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = stage(ctx, b.tracer, "write", func(_ context.Context, span trace.Span) error {
		written, err := writeIfChanged(b.output, result.Document)
		if err != nil {
			return errors.New("E143").
				WithDetail("Could not write " + b.output).
				Wrap(err)
		}
		span.SetAttributes(attribute.Bool("fileroutes.written", written))
		result.Written = written
		result.Output = b.output
		return nil
	}, attribute.String("fileroutes.output", b.output))
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (b *Builder) scan() (*routeconfig.Metadata, error) {
	info, err := os.Stat(b.views)
	if err != nil || !info.IsDir() {
		ce := errors.New("E142").
			WithDetail("No views directory at " + b.views).
			WithSuggestion("Create the directory or set paths.views in " + config.ConfigFileName)
		if err != nil {
			ce = ce.Wrap(err)
		}
		return nil, ce
	}

	s := scanner.NewScannerWithOptions(b.views, scanner.ScanOptions{
		Sort:  true,
		Cache: b.options.Cache,
	})
	root, err := s.Scan()
	if err != nil {
		var parseErrs goscanner.ErrorList
		if stderrors.As(err, &parseErrs) {
			return nil, errors.New("E173").Wrap(err).WithLocationFromError(err)
		}
		return nil, errors.New("E174").Wrap(err)
	}
	return root, nil
}

func (b *Builder) readManifest() (*routeconfig.Metadata, error) {
	format, err := scanner.FormatFromPath(b.manifest)
	if err != nil {
		return nil, errors.New("E145").Wrap(err)
	}

	f, err := os.Open(b.manifest)
	if err != nil {
		return nil, errors.New("E145").
			WithDetail("No manifest at " + b.manifest).
			Wrap(err)
	}
	defer f.Close()

	root, err := scanner.DecodeManifest(f, format)
	if err != nil {
		return nil, errors.New("E145").Wrap(err)
	}
	return root, nil
}

// writeIfChanged writes data to path unless the file already holds it.
// The write goes through a temporary file so readers never see a partial
// document.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}
