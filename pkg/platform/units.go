package platform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension is a length with its unit ("px", "rem", "em", "%", "pt", "dp"
// or "" for a bare number).
type Dimension struct {
	Value float64
	Unit  string
}

var dimensionUnits = []string{"rem", "px", "em", "pt", "dp", "vh", "vw", "%"}

// ParseDimension parses "16px", "1.5rem", "50%" or "12".
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	unit := ""
	for _, u := range dimensionUnits {
		if strings.HasSuffix(s, u) {
			unit = u
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, unit)), 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("invalid dimension %q", s)
	}
	return Dimension{Value: v, Unit: unit}, nil
}

// Points converts d to device-independent points.
// Relative units other than rem/em cannot be converted.
func (d Dimension) Points(remBase float64) (float64, bool) {
	switch d.Unit {
	case "", "px", "pt", "dp":
		return d.Value, true
	case "rem", "em":
		return d.Value * remBase, true
	}
	return 0, false
}

// ParseDuration parses "200ms" or "0.2s" into milliseconds.
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "ms"):
		return strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
	case strings.HasSuffix(s, "s"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		return v * 1000, err
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

// ZIndex converts n to a stacking order. It fails for fractions and for
// values outside the 32-bit range browsers and native views accept.
func ZIndex(n float64) (int, bool) {
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

// FormatNumber renders f without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
