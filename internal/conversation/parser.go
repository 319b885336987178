// Package conversation provides free-text input parsing and user
// notification implementations.
package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// ErrUnparseableInput is returned when a phrase lacks a temperature, a
// time, or a recognisable food category.
var ErrUnparseableInput = errors.New("could not understand input")

// InputParser turns phrases like "400F 20 min frozen" or
// "200°C for 1h15m meat" into a ConversionInput using simple patterns.
type InputParser struct {
	log *logger.Logger
}

var (
	hoursMinutesRe = regexp.MustCompile(`(?i)\b(\d+)\s*(?:h|hrs?|hours?)\s*(?:and\s+)?(\d+)\s*(?:m|mins?|minutes?)\b`)
	hoursRe        = regexp.MustCompile(`(?i)\b(\d+)\s*(?:h|hrs?|hours?)\b`)
	minutesRe      = regexp.MustCompile(`(?i)\b(\d+)\s*(?:m|mins?|minutes?)\b`)
	tempRe         = regexp.MustCompile(`(?i)\b(\d+)\s*(?:°\s*|deg(?:rees?)?\s*)?(fahrenheit|celsius|f|c)?\b`)
)

// fillerWords are dropped before looking for a category.
var fillerWords = map[string]bool{
	"for": true, "at": true, "in": true, "and": true, "the": true, "of": true, "oven": true, "bake": true, "cook": true,
}

// NewInputParser creates a pattern-based input parser.
func NewInputParser(log *logger.Logger) *InputParser {
	return &InputParser{log: log}
}

// Parse extracts temperature, time, unit, and category from text. A
// temperature without a unit suffix uses defaultUnit.
func (p *InputParser) Parse(text string, defaultUnit domain.TemperatureUnit) (domain.ConversionInput, error) {
	rest := strings.TrimSpace(text)
	if rest == "" {
		return domain.ConversionInput{}, fmt.Errorf("%w: empty input", ErrUnparseableInput)
	}
	p.log.Debug("parsing input: %q", rest)

	minutes, rest, ok := extractMinutes(rest)
	if !ok {
		return domain.ConversionInput{}, fmt.Errorf("%w: no cooking time found in %q", ErrUnparseableInput, text)
	}

	m := tempRe.FindStringSubmatchIndex(rest)
	if m == nil {
		return domain.ConversionInput{}, fmt.Errorf("%w: no temperature found in %q", ErrUnparseableInput, text)
	}
	// Any number is taken as-is; range checks belong to the validator.
	temp, err := strconv.Atoi(rest[m[2]:m[3]])
	if err != nil {
		return domain.ConversionInput{}, fmt.Errorf("%w: temperature %q is not a number", ErrUnparseableInput, rest[m[2]:m[3]])
	}
	unit := defaultUnit
	if m[4] >= 0 {
		u, err := domain.ParseUnit(rest[m[4]:m[5]])
		if err != nil {
			return domain.ConversionInput{}, err
		}
		unit = u
	}
	rest = rest[:m[0]] + " " + rest[m[1]:]

	cat, err := findCategory(rest)
	if err != nil {
		return domain.ConversionInput{}, fmt.Errorf("%w: no food category found in %q", ErrUnparseableInput, text)
	}

	in := domain.ConversionInput{OvenTemp: temp, OvenMinutes: minutes, Category: cat, Unit: unit}
	p.log.Debug("parsed %q as %+v", text, in)
	return in, nil
}

// extractMinutes finds the cooking time and returns the text without it.
func extractMinutes(s string) (int, string, bool) {
	if m := hoursMinutesRe.FindStringSubmatchIndex(s); m != nil {
		h, _ := strconv.Atoi(s[m[2]:m[3]])
		mins, _ := strconv.Atoi(s[m[4]:m[5]])
		return h*60 + mins, s[:m[0]] + " " + s[m[1]:], true
	}
	if m := hoursRe.FindStringSubmatchIndex(s); m != nil {
		h, _ := strconv.Atoi(s[m[2]:m[3]])
		return h * 60, s[:m[0]] + " " + s[m[1]:], true
	}
	if m := minutesRe.FindStringSubmatchIndex(s); m != nil {
		mins, _ := strconv.Atoi(s[m[2]:m[3]])
		return mins, s[:m[0]] + " " + s[m[1]:], true
	}
	return 0, s, false
}

// findCategory tries the whole remainder first so multi-word names like
// "fresh vegetables" match, then each word on its own.
func findCategory(s string) (domain.CategoryID, error) {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ",.;:!")
		if w != "" && !fillerWords[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return "", domain.ErrUnknownCategory
	}
	if id, err := domain.ParseCategory(strings.Join(words, " ")); err == nil {
		return id, nil
	}
	if id, err := domain.ParseCategory(strings.Join(words, "_")); err == nil {
		return id, nil
	}
	for _, w := range words {
		if id, err := domain.ParseCategory(w); err == nil {
			return id, nil
		}
	}
	return "", domain.ErrUnknownCategory
}
