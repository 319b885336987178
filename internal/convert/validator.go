package convert

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/airfryer/internal/domain"
)

// Reason classifies a validation failure.
type Reason int

const (
	ReasonTemperatureTooLow Reason = iota
	ReasonTemperatureTooHigh
	ReasonTimeTooShort
	ReasonTimeTooLong
	ReasonUnknownCategory
	ReasonUnsafeForCategory
)

// String returns a snake_case reason name, used as a metrics label.
func (r Reason) String() string {
	switch r {
	case ReasonTemperatureTooLow:
		return "temperature_too_low"
	case ReasonTemperatureTooHigh:
		return "temperature_too_high"
	case ReasonTimeTooShort:
		return "time_too_short"
	case ReasonTimeTooLong:
		return "time_too_long"
	case ReasonUnknownCategory:
		return "unknown_category"
	case ReasonUnsafeForCategory:
		return "unsafe_for_category"
	default:
		return "unknown"
	}
}

// Violation is one failed rule.
type Violation struct {
	Reason   Reason
	Category domain.CategoryID // set for ReasonUnsafeForCategory
	Limit    int               // the bound that was crossed, in the input's unit
	Message  string
}

// Validation is the outcome of Validate.
type Validation struct {
	Violations []Violation
}

// Valid reports whether no rule failed.
func (v Validation) Valid() bool { return len(v.Violations) == 0 }

// Has reports whether a violation with the given reason was recorded.
func (v Validation) Has(r Reason) bool {
	for _, vi := range v.Violations {
		if vi.Reason == r {
			return true
		}
	}
	return false
}

// Err returns nil when valid, otherwise a *ValidationError.
func (v Validation) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Violations: v.Violations}
}

// ValidationError is a structured rejection of a ConversionInput.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match domain.ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Validate checks every rule and reports all distinct failures together.
func Validate(in domain.ConversionInput) Validation {
	var v Validation
	add := func(vi Violation) {
		for _, have := range v.Violations {
			if have.Reason == vi.Reason && have.Category == vi.Category {
				return
			}
		}
		v.Violations = append(v.Violations, vi)
	}

	sym := in.Unit.Symbol()
	lo, hi := Range(in.Unit)
	if in.OvenTemp < lo {
		add(Violation{
			Reason:  ReasonTemperatureTooLow,
			Limit:   lo,
			Message: fmt.Sprintf("temperature must be at least %d%s", lo, sym),
		})
	}
	if in.OvenTemp > hi {
		add(Violation{
			Reason:  ReasonTemperatureTooHigh,
			Limit:   hi,
			Message: fmt.Sprintf("temperature must be at most %d%s", hi, sym),
		})
	}

	if in.OvenMinutes < MinMinutes {
		add(Violation{
			Reason:  ReasonTimeTooShort,
			Limit:   MinMinutes,
			Message: fmt.Sprintf("cooking time must be at least %d minute", MinMinutes),
		})
	}
	if in.OvenMinutes > MaxMinutes {
		add(Violation{
			Reason:  ReasonTimeTooLong,
			Limit:   MaxMinutes,
			Message: fmt.Sprintf("cooking time must be at most %d minutes", MaxMinutes),
		})
	}

	cat, err := domain.LookupCategory(in.Category)
	if err != nil {
		add(Violation{
			Reason:   ReasonUnknownCategory,
			Category: in.Category,
			Message:  fmt.Sprintf("unknown food category %q", in.Category),
		})
		return v
	}

	if cat.MinSafeF > 0 {
		floor := FromFahrenheit(cat.MinSafeF, in.Unit)
		if in.OvenTemp < floor {
			add(Violation{
				Reason:   ReasonUnsafeForCategory,
				Category: cat.ID,
				Limit:    floor,
				Message: fmt.Sprintf("temperature too low for %s: needs at least %d%s",
					strings.ToLower(cat.Name), floor, sym),
			})
		}
	}

	return v
}
