package main

import (
	"fmt"

	stdopentracing "github.com/opentracing/opentracing-go"
	zipkinot "github.com/openzipkin-contrib/zipkin-go-opentracing"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
)

// newTracers returns the opentracing and native zipkin tracers for the
// endpoint Set. Without a zipkin URL both are no-ops. With the bridge on,
// opentracing spans go to zipkin and the native tracer is nil, so each
// request is traced once.
func newTracers(cfg config) (stdopentracing.Tracer, *stdzipkin.Tracer, func() error, error) {
	if cfg.ZipkinURL == "" {
		return stdopentracing.NoopTracer{}, nil, func() error { return nil }, nil
	}

	var r reporter.Reporter = zipkinhttp.NewReporter(cfg.ZipkinURL)
	zEP, _ := stdzipkin.NewEndpoint("portsim", "localhost:0")
	zipkinTracer, err := stdzipkin.NewTracer(r, stdzipkin.WithLocalEndpoint(zEP))
	if err != nil {
		r.Close()
		return nil, nil, nil, fmt.Errorf("zipkin tracer: %w", err)
	}

	if cfg.ZipkinBridge {
		return zipkinot.Wrap(zipkinTracer), nil, r.Close, nil
	}
	return stdopentracing.NoopTracer{}, zipkinTracer, r.Close, nil
}
