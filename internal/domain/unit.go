// Package domain defines the core types and interfaces for the air-fryer
// converter. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// TemperatureUnit is the unit a temperature is expressed in.
type TemperatureUnit int

const (
	Fahrenheit TemperatureUnit = iota
	Celsius
)

// String returns the short unit code, "F" or "C".
func (u TemperatureUnit) String() string {
	switch u {
	case Fahrenheit:
		return "F"
	case Celsius:
		return "C"
	default:
		return "unknown"
	}
}

// Symbol returns the unit with its degree sign.
func (u TemperatureUnit) Symbol() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Celsius:
		return "°C"
	default:
		return "°?"
	}
}

var unitNames = map[string]TemperatureUnit{
	"f":          Fahrenheit,
	"°f":         Fahrenheit,
	"fahrenheit": Fahrenheit,
	"c":          Celsius,
	"°c":         Celsius,
	"celsius":    Celsius,
}

// ParseUnit converts a user-facing unit name to a TemperatureUnit.
func ParseUnit(s string) (TemperatureUnit, error) {
	if u, ok := unitNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return Fahrenheit, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
