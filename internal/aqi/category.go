// Package aqi implements AQI and pollutant categorization and health
// advisory derivation. Everything in this package is pure computation:
// no I/O, no clocks, no shared state.
package aqi

// Category represents the composite AQI severity on the six-bucket scale.
// Categories are totally ordered: a higher value means worse air.
type Category int

const (
	CategoryGood Category = iota
	CategoryModerate
	CategoryUnhealthySensitive
	CategoryUnhealthy
	CategoryVeryUnhealthy
	CategoryHazardous
)

// String returns the display label for the category.
func (c Category) String() string {
	switch c {
	case CategoryGood:
		return "Good"
	case CategoryModerate:
		return "Moderate"
	case CategoryUnhealthySensitive:
		return "Unhealthy for Sensitive Groups"
	case CategoryUnhealthy:
		return "Unhealthy"
	case CategoryVeryUnhealthy:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// Color represents the UI color token bound to a category.
type Color string

const (
	ColorGreen  Color = "green"
	ColorLime   Color = "lime"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorMaroon Color = "maroon"
)

// Color returns the color token for the category. The mapping is 1:1.
func (c Category) Color() Color {
	switch c {
	case CategoryGood:
		return ColorGreen
	case CategoryModerate:
		return ColorLime
	case CategoryUnhealthySensitive:
		return ColorYellow
	case CategoryUnhealthy:
		return ColorOrange
	case CategoryVeryUnhealthy:
		return ColorRed
	default:
		return ColorMaroon
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize
// as their display labels.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Categorize maps a composite AQI value to its severity category.
// Breakpoints are inclusive upper bounds. Values at or below zero are
// upstream placeholders and categorize as Good rather than erroring;
// sensor feeds are noisy and a single bad value must not fail a reading.
func Categorize(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUnhealthySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
