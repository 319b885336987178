// Package metrics collects Prometheus metrics for conversions and the
// cook-along timer, and optionally serves them over HTTP.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Collector is the Prometheus-backed recorder used by the engine and the
// timer package.
type Collector struct {
	conversions       *prometheus.CounterVec
	validationFails   *prometheus.CounterVec
	conversionErrors  prometheus.Counter
	timerTransitions  *prometheus.CounterVec
	timerCompletions  *prometheus.CounterVec
	minutesSavedTotal prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airfryer_conversions_total",
			Help: "Successful oven to air fryer conversions.",
		}, []string{"category", "unit"}),
		validationFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airfryer_validation_failures_total",
			Help: "Rejected conversion inputs by reason.",
		}, []string{"reason"}),
		conversionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airfryer_conversion_errors_total",
			Help: "Conversions that failed unexpectedly.",
		}),
		timerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airfryer_timer_transitions_total",
			Help: "Timer state transitions by target state.",
		}, []string{"to"}),
		timerCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airfryer_timer_completions_total",
			Help: "Finished timers by the path that observed the deadline.",
		}, []string{"path"}),
		minutesSavedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airfryer_minutes_saved_total",
			Help: "Cooking minutes saved compared to the oven.",
		}),
	}

	reg.MustRegister(
		c.conversions,
		c.validationFails,
		c.conversionErrors,
		c.timerTransitions,
		c.timerCompletions,
		c.minutesSavedTotal,
	)
	return c
}

// RecordConversion counts a successful conversion.
func (c *Collector) RecordConversion(res domain.ConversionResult) {
	c.conversions.WithLabelValues(string(res.Category.ID), res.Unit.String()).Inc()
	c.minutesSavedTotal.Add(float64(res.MinutesSaved))
}

// RecordValidationFailure counts one rejected rule.
func (c *Collector) RecordValidationFailure(reason string) {
	c.validationFails.WithLabelValues(reason).Inc()
}

// RecordConversionError counts an unexpected conversion failure.
func (c *Collector) RecordConversionError() {
	c.conversionErrors.Inc()
}

// RecordTimerTransition counts a timer entering a state.
func (c *Collector) RecordTimerTransition(to domain.TimerStatus) {
	c.timerTransitions.WithLabelValues(to.String()).Inc()
}

// RecordTimerCompletion counts a finished timer.
func (c *Collector) RecordTimerCompletion(path string) {
	c.timerCompletions.WithLabelValues(path).Inc()
}

// Serve exposes reg on addr at /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
