// Package widgets declares the built-in view kinds and their property
// tables.
//
// Every kind is a struct embedding core.ViewBase (directly or through a
// base kind) and registered against a core.Class that mirrors the Go
// embedding:
//
//	View
//	├── TextBase
//	│   ├── Label
//	│   └── Button
//	├── LayoutBase
//	│   └── StackLayout
//	└── Slider
//
// Properties are package-level handles. Read and write them through the
// handle or through the typed accessors on each kind:
//
//	l := widgets.NewLabel("Hello")
//	widgets.FontSizeProperty.Set(l, 18)
//	l.SetColor(graphics.RGB(0x33, 0x33, 0x33))
//
// Style properties (opacity, color, margin and so on) can also be set from
// a stylesheet by CSS name. Properties that affect geometry request
// layout from the view's pipeline owner when they change.
package widgets
