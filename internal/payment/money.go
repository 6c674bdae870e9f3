package payment

import "math"

// MinorUnits converts a major-unit amount into the integer minor-unit
// representation bePaid expects (e.g. 150.00 BYN -> 15000 kopecks).
// The subunit exponent is fixed at 2; zero-decimal currencies are not
// supported by this integration.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MajorUnits is the inverse of MinorUnits, used for display and diagnostics.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
