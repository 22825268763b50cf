package widgets

import "github.com/go-drift/cascade/pkg/core"

// Visibility controls whether a view is drawn and whether it takes space.
type Visibility string

const (
	VisibilityVisible  Visibility = "visible"
	VisibilityHidden   Visibility = "hidden"
	VisibilityCollapse Visibility = "collapse"
)

// TextTransform changes the case of displayed text.
type TextTransform string

const (
	TextTransformNone       TextTransform = "none"
	TextTransformUppercase  TextTransform = "uppercase"
	TextTransformLowercase  TextTransform = "lowercase"
	TextTransformCapitalize TextTransform = "capitalize"
)

// TextAlignment is the horizontal alignment of text.
type TextAlignment string

const (
	TextAlignmentInitial TextAlignment = "initial"
	TextAlignmentLeft    TextAlignment = "left"
	TextAlignmentCenter  TextAlignment = "center"
	TextAlignmentRight   TextAlignment = "right"
)

// Orientation is the axis a StackLayout arranges its children on.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

var (
	parseVisibility = core.MakeParser(core.MakeValidator(
		VisibilityVisible, VisibilityHidden, VisibilityCollapse))
	parseTextTransform = core.MakeParser(core.MakeValidator(
		TextTransformNone, TextTransformUppercase, TextTransformLowercase, TextTransformCapitalize))
	parseTextAlignment = core.MakeParser(core.MakeValidator(
		TextAlignmentInitial, TextAlignmentLeft, TextAlignmentCenter, TextAlignmentRight))
	parseOrientation = core.MakeParser(core.MakeValidator(
		OrientationVertical, OrientationHorizontal))
)
