package convert

import "github.com/hammamikhairi/airfryer/internal/domain"

// Calculate translates oven settings to air-fryer settings. It only fails
// for a category outside the catalog; callers should Validate first.
func Calculate(in domain.ConversionInput) (domain.ConversionResult, error) {
	cat, err := domain.LookupCategory(in.Category)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	reduction := reductionIn(cat.ReductionF, in.Unit)
	airTemp := in.OvenTemp - reduction

	// Integer percent keeps the floor exact (30 * 80 / 100 == 24).
	airMinutes := in.OvenMinutes * cat.TimePercent / 100
	if airMinutes < MinMinutes && in.OvenMinutes >= MinMinutes {
		airMinutes = MinMinutes
	}

	return domain.ConversionResult{
		OvenTemp:      in.OvenTemp,
		OvenMinutes:   in.OvenMinutes,
		AirTemp:       airTemp,
		AirMinutes:    airMinutes,
		Unit:          in.Unit,
		Category:      cat,
		Tip:           cat.Tip,
		TempReduction: reduction,
		MinutesSaved:  in.OvenMinutes - airMinutes,
	}, nil
}
