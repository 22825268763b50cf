// Package core provides the property system and style cascade of the view
// tree.
//
// # Properties
//
// A property is declared once, as a package level variable, and shared by
// every view of the classes it is registered on:
//
//	var opacityProperty = core.NewCssAnimationProperty(core.CssPropertyOptions[float64]{
//	    Name:           "opacity",
//	    CSSName:        "opacity",
//	    DefaultValue:   1,
//	    ValueConverter: core.ParseFloat,
//	})
//
// Each view stores up to four layers per property. The resolved value is
// the first layer present in this order: keyframe (animation properties
// only), local, CSS, inherited. Without any layer the declared default
// applies. Assigning a value equal to the resolved one does nothing;
// otherwise the change runs the property's ValueChanged callback, pushes
// the value to the native peer, notifies listeners, requests layout and
// propagates inherited values, in that order.
//
// # Inheritance
//
// Inherited properties flow from parent to child when a view is attached
// and whenever the parent's value changes. A child with its own local or
// CSS value shadows the property and the walk stops there for that
// property. Detaching a view clears every inherited layer on it.
//
// # Cascade
//
// A [StyleScope] yields the declarations matching a view. Applying them
// resets every CSS value the previous pass set but the new one does not,
// and only then sets the new values. Conversion failures are collected
// and returned; the affected property keeps its previous CSS value.
//
// # Native peers
//
// [InitNativeView] pushes every native-backed property to a peer and
// [ResetNativeView] restores the platform defaults before the peer is
// disposed. All calls run on the UI thread; nothing in this package
// locks per view state.
package core
