package domain

// ConversionInput is one request to translate oven settings.
type ConversionInput struct {
	OvenTemp    int
	OvenMinutes int
	Category    CategoryID
	Unit        TemperatureUnit
}

// ConversionResult is the outcome of a successful conversion. It is
// never modified after it is produced.
type ConversionResult struct {
	OvenTemp    int
	OvenMinutes int
	AirTemp     int
	AirMinutes  int
	Unit        TemperatureUnit
	Category    FoodCategory
	Tip         string

	// TempReduction is the reduction applied, in Unit.
	TempReduction int
	// MinutesSaved is OvenMinutes - AirMinutes.
	MinutesSaved int
}
