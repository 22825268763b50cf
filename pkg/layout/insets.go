package layout

import (
	"fmt"
	"strings"
)

// EdgeInsets holds one length per side, in CSS order.
type EdgeInsets struct {
	Top, Right, Bottom, Left Length
}

// EdgeInsetsAll returns insets with the same length on every side.
func EdgeInsetsAll(l Length) EdgeInsets {
	return EdgeInsets{Top: l, Right: l, Bottom: l, Left: l}
}

// EdgeInsetsSymmetric returns insets with vertical lengths on top and bottom
// and horizontal lengths on left and right.
func EdgeInsetsSymmetric(vertical, horizontal Length) EdgeInsets {
	return EdgeInsets{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// String formats the insets as four space separated CSS lengths.
func (e EdgeInsets) String() string {
	return fmt.Sprintf("%s %s %s %s", e.Top, e.Right, e.Bottom, e.Left)
}

// ParseEdgeInsets converts CSS shorthand text with one to four lengths
// ("10", "10 20", "10 20 30", "10 20 30 40") to insets using the CSS
// top, right, bottom, left expansion. Commas are accepted as separators.
func ParseEdgeInsets(text string) (EdgeInsets, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields) == 0 || len(fields) > 4 {
		return EdgeInsets{}, fmt.Errorf("expected 1 to 4 lengths, got %d", len(fields))
	}
	lengths := make([]Length, len(fields))
	for i, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return EdgeInsets{}, err
		}
		lengths[i] = l
	}
	switch len(lengths) {
	case 1:
		return EdgeInsetsAll(lengths[0]), nil
	case 2:
		return EdgeInsetsSymmetric(lengths[0], lengths[1]), nil
	case 3:
		return EdgeInsets{Top: lengths[0], Right: lengths[1], Bottom: lengths[2], Left: lengths[1]}, nil
	default:
		return EdgeInsets{Top: lengths[0], Right: lengths[1], Bottom: lengths[2], Left: lengths[3]}, nil
	}
}
