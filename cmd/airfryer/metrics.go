package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hammamikhairi/airfryer/internal/metrics"
)

// metrics returns a collector and, when metrics_addr is set, serves it
// until the returned stop func is called.
func (a *app) metrics(ctx context.Context) (*metrics.Collector, func()) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	if a.cfg.MetricsAddr == "" {
		return collector, func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := metrics.Serve(ctx, a.cfg.MetricsAddr, reg, a.log.Named("metrics")); err != nil {
			a.log.Error("metrics server: %v", err)
		}
	}()
	return collector, func() {
		cancel()
		<-done
	}
}
