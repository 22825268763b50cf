package widgets

import "github.com/go-drift/cascade/pkg/core"

type kind struct {
	class *core.Class
	new   func() core.View
}

// kinds lists every view kind, base classes first.
var kinds = []kind{
	{ViewClass, func() core.View { return NewView() }},
	{TextBaseClass, func() core.View { return core.NewView(TextBaseClass) }},
	{LabelClass, func() core.View { return NewLabel("") }},
	{ButtonClass, func() core.View { return NewButton("", nil) }},
	{LayoutBaseClass, func() core.View { return core.NewView(LayoutBaseClass) }},
	{StackLayoutClass, func() core.View { return NewStackLayout() }},
	{SliderClass, func() core.View { return NewSlider() }},
}

// Classes returns the class of every built-in view kind.
func Classes() []*core.Class {
	out := make([]*core.Class, len(kinds))
	for i, k := range kinds {
		out[i] = k.class
	}
	return out
}

// ClassByName finds a built-in class by name.
func ClassByName(name string) (*core.Class, bool) {
	for _, k := range kinds {
		if k.class.Name() == name {
			return k.class, true
		}
	}
	return nil, false
}

// New creates a view of the named kind. Base kinds produce a bare view
// of their class.
func New(name string) (core.View, bool) {
	for _, k := range kinds {
		if k.class.Name() == name {
			return k.new(), true
		}
	}
	return nil, false
}
