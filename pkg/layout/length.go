// Package layout provides the length and inset value types used by layout
// affecting properties, and the owner that batches layout requests.
//
// Layout itself is not computed here. Views that request layout are
// collected by a [PipelineOwner] and flushed parents first, so a host can
// run its own measure pass once per frame.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit identifies how a Length value is interpreted.
type Unit uint8

const (
	// UnitAuto lets the host layout pick the value.
	UnitAuto Unit = iota
	// UnitDip is a density independent pixel (the default unit).
	UnitDip
	// UnitPx is a device pixel.
	UnitPx
	// UnitPercent is a fraction of the parent size.
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitDip:
		return "dip"
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return "auto"
	}
}

// Length is a dimension with a unit. The zero value is 0dip.
type Length struct {
	Value float64
	Unit  Unit
}

// Auto is the length whose value the host layout decides.
var Auto = Length{Unit: UnitAuto}

// Dip returns a length in density independent pixels.
func Dip(v float64) Length { return Length{Value: v, Unit: UnitDip} }

// Px returns a length in device pixels.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Percent returns a length relative to the parent, where 1 is 100%.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// IsAuto reports whether l is the auto length.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// String formats the length as CSS text.
func (l Length) String() string {
	switch l.Unit {
	case UnitAuto:
		return "auto"
	case UnitPx:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "px"
	case UnitPercent:
		return strconv.FormatFloat(l.Value*100, 'f', -1, 64) + "%"
	default:
		return strconv.FormatFloat(l.Value, 'f', -1, 64)
	}
}

// ToDevicePixels resolves l against a parent size and display density.
// Auto resolves to 0.
func (l Length) ToDevicePixels(parent, density float64) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value
	case UnitPercent:
		return l.Value * parent
	case UnitDip:
		return l.Value * density
	default:
		return 0
	}
}

// ParseLength converts CSS text to a Length. Accepted forms are "auto",
// a bare number (dip), a number with a "px" or "dip" suffix, and a
// percentage. Negative values are allowed.
func ParseLength(text string) (Length, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "":
		return Length{}, fmt.Errorf("empty length")
	case s == "auto":
		return Auto, nil
	case strings.HasSuffix(s, "%"):
		v, err := parseNumber(s[:len(s)-1])
		if err != nil {
			return Length{}, err
		}
		return Percent(v / 100), nil
	case strings.HasSuffix(s, "px"):
		v, err := parseNumber(s[:len(s)-2])
		if err != nil {
			return Length{}, err
		}
		return Px(v), nil
	case strings.HasSuffix(s, "dip"):
		v, err := parseNumber(s[:len(s)-3])
		if err != nil {
			return Length{}, err
		}
		return Dip(v), nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return Length{}, err
	}
	return Dip(v), nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
