package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/airfryer/internal/convert"
	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

type fakeRecorder struct {
	conversions int
	reasons     []string
	errors      int
}

func (r *fakeRecorder) RecordConversion(domain.ConversionResult) { r.conversions++ }
func (r *fakeRecorder) RecordValidationFailure(reason string)    { r.reasons = append(r.reasons, reason) }
func (r *fakeRecorder) RecordConversionError()                   { r.errors++ }

type fakeTimer struct {
	duration time.Duration
	label    string
	calls    int
}

func (f *fakeTimer) Retarget(_ context.Context, d time.Duration, label string) error {
	f.duration = d
	f.label = label
	f.calls++
	return nil
}

func setupEngine(t *testing.T, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return New(log, opts...), context.Background()
}

func TestConvert(t *testing.T) {
	rec := &fakeRecorder{}
	tm := &fakeTimer{}
	eng, ctx := setupEngine(t, WithRecorder(rec), WithTimer(tm))

	res, err := eng.Convert(ctx, domain.ConversionInput{
		OvenTemp: 400, OvenMinutes: 30, Category: domain.CategoryFreshVegetables, Unit: domain.Fahrenheit,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.AirTemp != 375 || res.AirMinutes != 24 {
		t.Fatalf("expected 375/24, got %d/%d", res.AirTemp, res.AirMinutes)
	}

	cur, ok := eng.Current()
	if !ok || *cur != *res {
		t.Fatalf("expected current result %+v, got %+v", res, cur)
	}
	if eng.State().InProgress {
		t.Fatal("expected in-progress cleared after conversion")
	}
	if rec.conversions != 1 {
		t.Fatalf("expected 1 recorded conversion, got %d", rec.conversions)
	}
	if tm.calls != 1 || tm.duration != 24*time.Minute || tm.label != "Fresh Vegetables" {
		t.Fatalf("expected timer retargeted to 24m, got %+v", tm)
	}
}

func TestConvertRejectsInvalid(t *testing.T) {
	rec := &fakeRecorder{}
	tm := &fakeTimer{}
	eng, ctx := setupEngine(t, WithRecorder(rec), WithTimer(tm))

	_, err := eng.Convert(ctx, domain.ConversionInput{
		OvenTemp: 300, OvenMinutes: 30, Category: domain.CategoryRawMeats, Unit: domain.Fahrenheit,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var verr *convert.ValidationError
	if !errors.As(err, &verr) || verr.Violations[0].Reason != convert.ReasonUnsafeForCategory {
		t.Fatalf("expected raw meat safety rejection, got %v", err)
	}

	st := eng.State()
	if st.InProgress || st.Result != nil || len(st.Violations) != 1 {
		t.Fatalf("unexpected state after rejection: %+v", st)
	}
	if len(rec.reasons) != 1 || rec.reasons[0] != "unsafe_for_category" {
		t.Fatalf("expected recorded reason, got %v", rec.reasons)
	}
	if tm.calls != 0 {
		t.Fatal("timer must not be retargeted on rejection")
	}
}

func TestConvertRecoversFromPanic(t *testing.T) {
	rec := &fakeRecorder{}
	eng, ctx := setupEngine(t, WithRecorder(rec))
	eng.calc = func(domain.ConversionInput) (domain.ConversionResult, error) {
		panic("division by zero")
	}

	_, err := eng.Convert(ctx, domain.ConversionInput{
		OvenTemp: 400, OvenMinutes: 20, Category: domain.CategoryFrozenFoods, Unit: domain.Fahrenheit,
	})
	if !errors.Is(err, domain.ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}

	st := eng.State()
	if st.InProgress {
		t.Fatal("expected in-progress reset after failure")
	}
	if st.ErrMessage == "" {
		t.Fatal("expected a user-visible error message")
	}
	if rec.errors != 1 {
		t.Fatalf("expected 1 recorded error, got %d", rec.errors)
	}
}

func TestNewConversionReplacesResult(t *testing.T) {
	eng, ctx := setupEngine(t)

	first := domain.ConversionInput{OvenTemp: 400, OvenMinutes: 20, Category: domain.CategoryFrozenFoods, Unit: domain.Fahrenheit}
	second := domain.ConversionInput{OvenTemp: 200, OvenMinutes: 40, Category: domain.CategoryBakedGoods, Unit: domain.Celsius}

	if _, err := eng.Convert(ctx, first); err != nil {
		t.Fatalf("first: %v", err)
	}
	res, err := eng.Convert(ctx, second)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	cur, _ := eng.Current()
	if cur.Category.ID != domain.CategoryBakedGoods || cur.AirTemp != res.AirTemp {
		t.Fatalf("expected second result current, got %+v", cur)
	}

	eng.Clear()
	if _, ok := eng.Current(); ok {
		t.Fatal("expected no result after clear")
	}
}
