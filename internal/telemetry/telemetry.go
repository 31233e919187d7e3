// Package telemetry wires zap logging and OpenTelemetry tracing
// together behind one setup/teardown path, used by the cmd/waxc
// subcommands. cmd/waxc-repl does not use it.
package telemetry

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Config controls whether tracing spans are recorded and where they
// are written. Logging is always initialized; tracing is the
// optional half of observability.
type Config struct {
	ServiceName  string
	TraceEnabled bool
	TraceWriter  io.Writer // defaults to io.Discard when nil
	Verbose      bool      // true selects zap's development config
}

// Shutdown flushes the logger and tears down the tracer provider.
type Shutdown func(context.Context) error

// Init builds a *zap.Logger and installs a global tracer provider,
// returning both plus a Shutdown to call before the process exits.
func Init(ctx context.Context, cfg Config) (*zap.Logger, Shutdown, error) {
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.TraceEnabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return logger, func(context.Context) error { return logger.Sync() }, nil
	}

	writer := cfg.TraceWriter
	if writer == nil {
		writer = io.Discard
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(writer))
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.ServiceName),
	))
	if err != nil {
		return nil, nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) error {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			_ = logger.Sync()
			return err
		}
		return logger.Sync()
	}
	return logger, shutdown, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Tracer returns the tracer compiler phases should create spans from.
func Tracer() oteltrace.Tracer {
	return otel.Tracer("waxc")
}

// Phase starts a span named after a compiler phase (lex, parse,
// typecheck, emit) and returns the function to end it.
func Phase(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := Tracer().Start(ctx, name)
	return ctx, func() { span.End() }
}
