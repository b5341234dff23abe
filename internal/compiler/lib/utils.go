package lib

import (
	"math"
	"strconv"
)

const (
	// DefaultIntegerDigits is the PIC integer width used for variables whose
	// magnitude is unknown at compile time.
	DefaultIntegerDigits = 12
	// MaxIntegerDigits is the widest integer part GnuCOBOL accepts alongside
	// the fixed fractional digits.
	MaxIntegerDigits = 31 - FractionDigits
	// FractionDigits is the fixed number of decimal places in every PIC.
	FractionDigits = 6
)

// CalculateWidthForValue returns the number of integer digits needed to hold
// val (sign excluded). Non-finite values get the maximum width.
func CalculateWidthForValue(val float64) int {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return MaxIntegerDigits
	}
	val = math.Abs(val)

	if val < 1 {
		return 1
	}

	width := len(strconv.FormatFloat(math.Floor(val), 'f', 0, 64))
	if width > MaxIntegerDigits {
		return MaxIntegerDigits
	}
	return width
}
