package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// config is read from PORTSIM_* environment variables first; flags override it.
type config struct {
	MetricsAddr    string `env:"PORTSIM_METRICS_ADDR"`
	ZipkinURL      string `env:"PORTSIM_ZIPKIN_URL"`
	ZipkinBridge   bool   `env:"PORTSIM_ZIPKIN_BRIDGE"`
	CapacityChecks bool   `env:"PORTSIM_CAPACITY_CHECKS"`
}

func loadConfig(args []string) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("portsim", flag.ContinueOnError)
	fs.StringVar(&cfg.MetricsAddr, "metrics.addr", cfg.MetricsAddr, "HTTP listen address for /metrics, metrics are not served when empty")
	fs.StringVar(&cfg.ZipkinURL, "zipkin.url", cfg.ZipkinURL, "Zipkin HTTP reporter URL, tracing to zipkin is off when empty")
	fs.BoolVar(&cfg.ZipkinBridge, "zipkin.bridge", cfg.ZipkinBridge, "Send opentracing spans to zipkin instead of using the native zipkin middleware")
	fs.BoolVar(&cfg.CapacityChecks, "capacity.checks", cfg.CapacityChecks, "Enforce per-kind and total weight limits on load")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}
