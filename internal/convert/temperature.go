// Package convert holds the pure oven-to-air-fryer arithmetic: unit
// conversion, the per-category calculator, and input validation.
package convert

import (
	"math"

	"github.com/hammamikhairi/airfryer/internal/domain"
)

// Safe oven range per unit, inclusive.
const (
	MinFahrenheit = 200
	MaxFahrenheit = 500
	MinCelsius    = 93
	MaxCelsius    = 260
)

// Cooking time bounds in minutes, inclusive.
const (
	MinMinutes = 1
	MaxMinutes = 300
)

// FahrenheitToCelsius converts and rounds to the nearest degree.
func FahrenheitToCelsius(f int) int {
	return int(math.Round(float64(f-32) * 5 / 9))
}

// CelsiusToFahrenheit converts and rounds to the nearest degree.
func CelsiusToFahrenheit(c int) int {
	return int(math.Round(float64(c)*9/5 + 32))
}

// FromFahrenheit expresses a °F value in unit.
func FromFahrenheit(tempF int, unit domain.TemperatureUnit) int {
	if unit == domain.Celsius {
		return FahrenheitToCelsius(tempF)
	}
	return tempF
}

// Range returns the inclusive safe oven range for unit.
func Range(unit domain.TemperatureUnit) (lo, hi int) {
	if unit == domain.Celsius {
		return MinCelsius, MaxCelsius
	}
	return MinFahrenheit, MaxFahrenheit
}

// IsValidTemperature reports whether temp lies inside the safe range for unit.
func IsValidTemperature(temp int, unit domain.TemperatureUnit) bool {
	lo, hi := Range(unit)
	return temp >= lo && temp <= hi
}

// reductionIn rescales a °F temperature difference to unit. A difference
// scales by 5/9 with no offset.
func reductionIn(reductionF int, unit domain.TemperatureUnit) int {
	if unit == domain.Celsius {
		return int(math.Round(float64(reductionF) * 5 / 9))
	}
	return reductionF
}
