package operation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"

	"github.com/Qalifah/portsim/snapshot"
)

type runRequest struct {
	Commands []Command
}

type runResponse struct {
	Report Report `json:"report"`
	Err    error  `json:"error,omitempty"`
}

func makeRunEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(runRequest)
		r, err := s.Run(req.Commands)
		return runResponse{Report: r, Err: err}, nil
	}
}

type snapshotRequest struct{}

type snapshotResponse struct {
	Snapshot snapshot.Snapshot `json:"snapshot"`
	Err      error             `json:"error,omitempty"`
}

func makeSnapshotEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(snapshotRequest)
		snap, err := s.Snapshot()
		return snapshotResponse{Snapshot: snap, Err: err}, nil
	}
}

// Set collects all of the endpoints that compose a simulation service.
type Set struct {
	RunEndpoint      endpoint.Endpoint
	SnapshotEndpoint endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func NewSet(svc Service, logger log.Logger, duration metrics.Histogram, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) Set {
	var runEndpoint endpoint.Endpoint
	{
		runEndpoint = makeRunEndpoint(svc)
		runEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(runEndpoint)
		runEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(runEndpoint)
		runEndpoint = opentracing.TraceServer(otTracer, "Run")(runEndpoint)
		if zipkinTracer != nil {
			runEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Run")(runEndpoint)
		}
		runEndpoint = LoggingMiddleware(log.With(logger, "method", "Run"))(runEndpoint)
		runEndpoint = InstrumentingMiddleware(duration.With("method", "Run"))(runEndpoint)
	}

	var snapshotEndpoint endpoint.Endpoint
	{
		snapshotEndpoint = makeSnapshotEndpoint(svc)
		snapshotEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(1), 100))(snapshotEndpoint)
		snapshotEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(snapshotEndpoint)
		snapshotEndpoint = opentracing.TraceServer(otTracer, "Snapshot")(snapshotEndpoint)
		if zipkinTracer != nil {
			snapshotEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Snapshot")(snapshotEndpoint)
		}
		snapshotEndpoint = LoggingMiddleware(log.With(logger, "method", "Snapshot"))(snapshotEndpoint)
		snapshotEndpoint = InstrumentingMiddleware(duration.With("method", "Snapshot"))(snapshotEndpoint)
	}

	return Set{
		RunEndpoint:      runEndpoint,
		SnapshotEndpoint: snapshotEndpoint,
	}
}

// Run implements the service interface so Set can be used as a service
func (s Set) Run(commands []Command) (Report, error) {
	resp, err := s.RunEndpoint(context.Background(), runRequest{Commands: commands})
	if err != nil {
		return Report{}, err
	}
	response := resp.(runResponse)
	return response.Report, response.Err
}

// Snapshot implements the service interface so Set can be used as a service
func (s Set) Snapshot() (snapshot.Snapshot, error) {
	resp, err := s.SnapshotEndpoint(context.Background(), snapshotRequest{})
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	response := resp.(snapshotResponse)
	return response.Snapshot, response.Err
}

// LoggingMiddleware logs the outcome of every call through the endpoint.
func LoggingMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				logger.Log("transport_error", err, "took", time.Since(begin))
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// InstrumentingMiddleware records the duration of each call, labelled by
// whether it failed at the endpoint level.
func InstrumentingMiddleware(duration metrics.Histogram) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				duration.With("success", fmt.Sprint(err == nil)).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, request)
		}
	}
}
