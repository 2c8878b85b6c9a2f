// Package units converts host lengths to output lengths and formats numbers
// for the generated script.
package units

import (
	"math"
	"strconv"
	"strings"
)

// CMToMM converts the host's internal length unit (cm) to millimeters.
const CMToMM = 10.0

// DefaultPrecision is the number of decimals kept when formatting values.
const DefaultPrecision = 4

// ToMM converts a host length to millimeters. Angles must never be passed here.
func ToMM(v float64) float64 {
	return v * CMToMM
}

// Format renders a value for the generated script. Whole numbers are printed
// without a decimal point, everything else is rounded to precision decimals
// with trailing zeros stripped.
func Format(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	if math.Abs(v-math.Round(v)) < 1e-4 {
		v = math.Round(v)
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	str := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(str, ".") {
		str = strings.TrimRight(str, "0")
		str = strings.TrimSuffix(str, ".")
	}
	if str == "-0" {
		str = "0"
	}
	return str
}

// Dim is a dimensional value in millimeters that may be linked to a named
// parameter. When Ref is set the script references the parameter instead of
// the literal value.
type Dim struct {
	Value float64
	Ref   string
}

// Literal returns an unlinked dimension.
func Literal(v float64) Dim {
	return Dim{Value: v}
}

// IsZero reports whether the dimension is an unlinked zero.
func (d Dim) IsZero() bool {
	return d.Ref == "" && d.Value == 0
}

// Render returns the parameter reference or the formatted literal.
func (d Dim) Render(precision int) string {
	if d.Ref != "" {
		return d.Ref
	}
	return Format(d.Value, precision)
}
