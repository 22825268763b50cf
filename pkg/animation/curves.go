package animation

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// Curve is an easing function in gween's (time, begin, change, duration)
// form.
type Curve = ease.TweenFunc

// Named curves, matching the CSS timing function keywords.
var (
	Linear    Curve = ease.Linear
	Ease      Curve = ease.InOutSine
	EaseIn    Curve = ease.InCubic
	EaseOut   Curve = ease.OutCubic
	EaseInOut Curve = ease.InOutCubic
)

var curvesByName = map[string]Curve{
	"linear":         Linear,
	"ease":           Ease,
	"ease-in":        EaseIn,
	"ease-out":       EaseOut,
	"ease-in-out":    EaseInOut,
	"ease-in-back":   ease.InBack,
	"ease-out-back":  ease.OutBack,
	"ease-out-quad":  ease.OutQuad,
	"ease-in-quad":   ease.InQuad,
	"spring":         ease.OutElastic,
	"bounce":         ease.OutBounce,
	"ease-in-expo":   ease.InExpo,
	"ease-out-expo":  ease.OutExpo,
	"ease-in-circ":   ease.InCirc,
	"ease-out-circ":  ease.OutCirc,
	"ease-in-out-quad": ease.InOutQuad,
}

// CurveByName returns the curve for a CSS timing function keyword.
func CurveByName(name string) (Curve, bool) {
	c, ok := curvesByName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
