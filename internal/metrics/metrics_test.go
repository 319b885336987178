package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hammamikhairi/airfryer/internal/domain"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	cat, err := domain.LookupCategory(domain.CategoryFreshVegetables)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	c.RecordConversion(domain.ConversionResult{Category: cat, Unit: domain.Fahrenheit, MinutesSaved: 6})
	c.RecordConversion(domain.ConversionResult{Category: cat, Unit: domain.Fahrenheit, MinutesSaved: 4})
	c.RecordValidationFailure("time_too_long")
	c.RecordConversionError()
	c.RecordTimerTransition(domain.TimerRunning)
	c.RecordTimerCompletion("alarm")

	if got := testutil.ToFloat64(c.conversions.WithLabelValues("fresh_vegetables", "F")); got != 2 {
		t.Errorf("conversions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.minutesSavedTotal); got != 10 {
		t.Errorf("minutes saved = %v, want 10", got)
	}
	if got := testutil.ToFloat64(c.validationFails.WithLabelValues("time_too_long")); got != 1 {
		t.Errorf("validation failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.conversionErrors); got != 1 {
		t.Errorf("conversion errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.timerTransitions.WithLabelValues("running")); got != 1 {
		t.Errorf("timer transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.timerCompletions.WithLabelValues("alarm")); got != 1 {
		t.Errorf("timer completions = %v, want 1", got)
	}
}

func TestNewCollectorRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTimerTransition(domain.TimerIdle)
	c.RecordTimerCompletion("tick")
	c.RecordValidationFailure("unknown_category")
	c.RecordConversionError()

	cat, _ := domain.LookupCategory(domain.CategoryFrozenFoods)
	c.RecordConversion(domain.ConversionResult{Category: cat, Unit: domain.Celsius})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 6 {
		t.Fatalf("expected 6 metric families, got %d", len(families))
	}
}
