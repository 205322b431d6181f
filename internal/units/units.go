// Package units holds the numeric conversions and display formatting used
// for every temperature and wind figure shown on the dashboard.
package units

import (
	"fmt"
	"math"
)

// Unit is the temperature unit selected for display.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}

// RoundHalfUp rounds to the nearest integer, ties toward positive infinity
// (-2.5 becomes -2, 2.5 becomes 3).
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Round1 rounds n to one decimal digit.
func Round1(n float64) float64 {
	return RoundHalfUp(n*10) / 10
}

// CelsiusToFahrenheit converts and rounds to one decimal digit.
// The conversion is lossy: converting back is not guaranteed to be exact.
func CelsiusToFahrenheit(c float64) float64 {
	return RoundHalfUp((c*9/5+32)*10) / 10
}

// MetersPerSecondToKmh converts a wind speed without rounding.
func MetersPerSecondToKmh(ms float64) float64 {
	return ms * 3.6
}

// FormatTemp renders a Celsius value in the requested unit, e.g. "12.3°C".
// A nil value renders as "-".
func FormatTemp(tempC *float64, u Unit) string {
	if tempC == nil {
		return "-"
	}
	if u == Fahrenheit {
		return formatNumber(CelsiusToFahrenheit(*tempC)) + "°F"
	}
	return formatNumber(*tempC) + "°C"
}

// formatNumber prints at most one decimal digit and drops a trailing ".0".
func formatNumber(v float64) string {
	return fmt.Sprint(Round1(v))
}

// FormatValue renders an optional figure with at most one decimal digit,
// "-" when absent.
func FormatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatNumber(*v)
}

// FormatPercent renders a humidity figure, e.g. "55%".
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}
