// Package engine holds the conversion state the user interface talks to:
// it validates input, runs the calculator, keeps the current result, and
// retargets the cook-along timer when a new result replaces the old one.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/airfryer/internal/convert"
	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Recorder receives conversion events for metrics.
type Recorder interface {
	RecordConversion(res domain.ConversionResult)
	RecordValidationFailure(reason string)
	RecordConversionError()
}

type nopRecorder struct{}

func (nopRecorder) RecordConversion(domain.ConversionResult) {}
func (nopRecorder) RecordValidationFailure(string)           {}
func (nopRecorder) RecordConversionError()                   {}

// Retargeter is the part of a countdown the engine drives.
type Retargeter interface {
	Retarget(ctx context.Context, d time.Duration, label string) error
}

// Option configures the engine.
type Option func(*Engine)

// WithRecorder reports conversions to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.rec = r
	}
}

// WithTimer binds a countdown that is reset to each new result's time.
func WithTimer(t Retargeter) Option {
	return func(e *Engine) {
		e.timer = t
	}
}

// State is a snapshot of what the user currently sees.
type State struct {
	InProgress bool
	Result     *domain.ConversionResult
	Violations []convert.Violation
	ErrMessage string
}

// Engine manages the current conversion. It depends only on interfaces and
// is safe for concurrent use.
type Engine struct {
	log   *logger.Logger
	rec   Recorder
	timer Retargeter
	calc  func(domain.ConversionInput) (domain.ConversionResult, error)

	mu    sync.Mutex
	state State
}

// New creates a conversion engine with the given options.
func New(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:  log,
		rec:  nopRecorder{},
		calc: convert.Calculate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convert validates in and, if it passes, computes and keeps the result.
// Rejections come back as *convert.ValidationError; unexpected failures
// wrap domain.ErrConversionFailed.
func (e *Engine) Convert(ctx context.Context, in domain.ConversionInput) (*domain.ConversionResult, error) {
	e.mu.Lock()
	e.state.InProgress = true
	e.mu.Unlock()

	v := convert.Validate(in)
	if !v.Valid() {
		for _, vi := range v.Violations {
			e.rec.RecordValidationFailure(vi.Reason.String())
		}
		e.mu.Lock()
		e.state = State{Violations: v.Violations}
		e.mu.Unlock()
		e.log.Debug("rejected %+v: %d violation(s)", in, len(v.Violations))
		return nil, v.Err()
	}

	res, err := e.safeCalculate(in)
	if err != nil {
		e.rec.RecordConversionError()
		e.mu.Lock()
		e.state = State{ErrMessage: "Something went wrong while converting. Please try again."}
		e.mu.Unlock()
		e.log.Error("converting %+v: %v", in, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrConversionFailed, err)
	}

	e.rec.RecordConversion(res)
	e.mu.Lock()
	e.state = State{Result: &res}
	e.mu.Unlock()

	e.log.Info("converted %d%s/%dmin %s -> %d%s/%dmin",
		in.OvenTemp, in.Unit.Symbol(), in.OvenMinutes, in.Category,
		res.AirTemp, res.Unit.Symbol(), res.AirMinutes)

	if e.timer != nil {
		d := time.Duration(res.AirMinutes) * time.Minute
		if err := e.timer.Retarget(ctx, d, res.Category.Name); err != nil {
			e.log.Warn("retargeting timer: %v", err)
		}
	}

	out := res
	return &out, nil
}

// safeCalculate turns a panic in the calculation path into an error.
func (e *Engine) safeCalculate(in domain.ConversionInput) (res domain.ConversionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.calc(in)
}

// Current returns the last successful result, if any.
func (e *Engine) Current() (*domain.ConversionResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Result == nil {
		return nil, false
	}
	res := *e.state.Result
	return &res, true
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.Violations = append([]convert.Violation(nil), e.state.Violations...)
	return s
}

// Clear drops the current result and any error.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = State{}
	e.log.Debug("conversion state cleared")
}
