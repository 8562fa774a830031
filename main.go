package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Qalifah/portsim/inmem"
	"github.com/Qalifah/portsim/operation"
	"github.com/Qalifah/portsim/ship"
	"github.com/Qalifah/portsim/snapshot"
)

func main() {
	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		level.Error(logger).Log("msg", "config", "err", err)
		os.Exit(2)
	}

	otTracer, zipkinTracer, closeTracing, err := newTracers(cfg)
	if err != nil {
		level.Error(logger).Log("msg", "tracing", "err", err)
		os.Exit(1)
	}
	defer closeTracing()

	ports := inmem.NewPortRepository()
	ships := inmem.NewShipRepository()

	var opts []ship.Option
	if cfg.CapacityChecks {
		opts = append(opts, ship.WithCapacityChecks())
	}
	if err := operation.Seed(ports, ships, sampleFleet, opts...); err != nil {
		level.Error(logger).Log("msg", "seed", "err", err)
		os.Exit(1)
	}

	fieldKeys := []string{"method"}

	var svc operation.Service
	svc = operation.NewService(ports, ships)
	svc = operation.NewLoggingService(log.With(logger, "component", "operation"), svc)
	svc = operation.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "portsim",
			Subsystem: "operation_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "portsim",
			Subsystem: "operation_service",
			Name:      "command_count",
			Help:      "Number of commands replayed, by action and outcome.",
		}, []string{"action", "outcome"}),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "portsim",
			Subsystem: "operation_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		svc,
	)

	duration := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: "portsim",
		Subsystem: "operation",
		Name:      "endpoint_duration_seconds",
		Help:      "Endpoint request duration in seconds.",
	}, []string{"method", "success"})

	set := operation.NewSet(svc, logger, duration, otTracer, zipkinTracer)

	report, err := set.Run(sampleCommands)
	for _, res := range report.Results {
		if res.Err != nil {
			level.Warn(logger).Log("run_id", report.RunID, "command", res.Index, "action", res.Action, "err", res.Err)
		}
	}
	if err != nil {
		level.Error(logger).Log("run_id", report.RunID, "msg", "run aborted", "err", err)
		os.Exit(1)
	}

	snap, err := set.Snapshot()
	if err != nil {
		level.Error(logger).Log("msg", "snapshot", "err", err)
		os.Exit(1)
	}
	logSnapshot(log.With(logger, "run_id", report.RunID), snap)

	if cfg.MetricsAddr == "" {
		return
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	errs := make(chan error, 2)
	go func() {
		level.Info(logger).Log("transport", "http", "address", cfg.MetricsAddr, "msg", "listening")
		errs <- http.ListenAndServe(cfg.MetricsAddr, r)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	level.Info(logger).Log("terminated", <-errs)
}

func logSnapshot(logger log.Logger, snap snapshot.Snapshot) {
	for _, p := range snap.Ports {
		level.Info(logger).Log(
			"port", p.Label,
			"lat", p.Lat,
			"lon", p.Lon,
			"ships", len(p.Ships),
			"containers", fmt.Sprint(p.Containers),
		)
		for _, s := range p.Ships {
			level.Info(logger).Log(
				"port", p.Label,
				"ship", s.Label,
				"fuel_left", s.FuelLeft,
				"containers", fmt.Sprint(s.Containers),
			)
		}
	}
}
