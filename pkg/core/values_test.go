package core

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/cascade/pkg/errors"
	"github.com/go-drift/cascade/pkg/layout"
)

func TestOpacityScenario(t *testing.T) {
	v := NewView(baseClass)

	opacityProperty.Set(v, 0.5)
	if got := opacityProperty.Get(v); got != 0.5 {
		t.Fatalf("after local set: opacity = %v, want 0.5", got)
	}

	if err := ApplyDeclarations(v, []Declaration{{Property: "opacity", Value: "0.8"}}); err != nil {
		t.Fatalf("ApplyDeclarations: %v", err)
	}
	if got := opacityProperty.Get(v); got != 0.5 {
		t.Errorf("local should beat CSS: opacity = %v, want 0.5", got)
	}

	opacityProperty.Unset(v)
	if got := opacityProperty.Get(v); got != 0.8 {
		t.Errorf("after unset: opacity = %v, want 0.8", got)
	}

	if err := ApplyDeclarations(v, nil); err != nil {
		t.Fatalf("ApplyDeclarations: %v", err)
	}
	if got := opacityProperty.Get(v); got != 1.0 {
		t.Errorf("after removing CSS: opacity = %v, want 1", got)
	}
	if src := opacityProperty.Source(v); src != SourceDefault {
		t.Errorf("Source = %v, want default", src)
	}
}

func TestPrecedence(t *testing.T) {
	parent := NewView(labelClass)
	child := NewView(labelClass)
	tree(parent, child)

	fontSizeProperty.Set(parent, 20)
	if err := ApplyDeclarations(child, []Declaration{{Property: "font-size", Value: "16"}}); err != nil {
		t.Fatal(err)
	}
	fontSizeProperty.Set(child, 18)

	steps := []struct {
		name   string
		want   float64
		source ValueSource
		next   func()
	}{
		{"local", 18, SourceLocal, func() { fontSizeProperty.Unset(child) }},
		{"css", 16, SourceCss, func() { _ = ApplyDeclarations(child, nil) }},
		{"inherited", 20, SourceInherited, func() { fontSizeProperty.Unset(parent) }},
		{"default", 12, SourceDefault, nil},
	}
	for _, step := range steps {
		if got := fontSizeProperty.Get(child); got != step.want {
			t.Errorf("%s: fontSize = %v, want %v", step.name, got, step.want)
		}
		if got := fontSizeProperty.Source(child); got != step.source {
			t.Errorf("%s: source = %v, want %v", step.name, got, step.source)
		}
		if step.next != nil {
			step.next()
		}
	}
}

func TestEqualAssignmentIsNoop(t *testing.T) {
	parent := NewView(baseClass)
	child := NewView(baseClass)
	tree(parent, child)
	parentEvents := record(parent)
	childEvents := record(child)

	themeProperty.Set(parent, "dark")
	themeProperty.Set(parent, "dark")
	themeProperty.Set(parent, "dark")

	if len(parentEvents.events) != 1 {
		t.Errorf("parent events = %q, want one change", parentEvents)
	}
	if len(childEvents.events) != 1 {
		t.Errorf("child events = %q, want one propagated change", childEvents)
	}

	// Setting the default explicitly changes the source, not the value.
	widthProperty.Set(child, 0)
	if len(childEvents.events) != 1 {
		t.Errorf("assigning the default value fired %q", childEvents)
	}
	if src := widthProperty.Source(child); src != SourceLocal {
		t.Errorf("Source = %v, want local", src)
	}
}

func TestEqualityComparerDeepEqual(t *testing.T) {
	v := NewView(baseClass)
	events := record(v)

	tagsProperty.Set(v, []string{"a", "b"})
	tagsProperty.Set(v, []string{"a", "b"})
	if len(events.events) != 1 {
		t.Errorf("events = %q, want one", events)
	}
}

func TestDefaultEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, 0, false},
		{1, 1, true},
		{1, int64(1), false},
		{"a", "a", true},
		{[]int{1}, []int{1}, true},
		{map[string]int{"a": 1}, map[string]int{"a": 2}, false},
	}
	for _, tt := range tests {
		if got := defaultEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("defaultEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCoercion(t *testing.T) {
	v := NewView(baseClass)

	valueProperty.Set(v, 150)
	if got := valueProperty.Get(v); got != 100 {
		t.Errorf("value = %v, want clamped 100", got)
	}

	maxProperty.Set(v, 200)
	if got := valueProperty.Get(v); got != 150 {
		t.Errorf("after raising max: value = %v, want 150", got)
	}

	minProperty.Set(v, 175)
	if got := valueProperty.Get(v); got != 175 {
		t.Errorf("after raising min: value = %v, want 175", got)
	}

	if got := v.Layers(valueProperty.Descriptor()).Local; got != 150.0 {
		t.Errorf("raw local value = %v, want 150", got)
	}
}

func TestSetByName(t *testing.T) {
	v := NewView(labelClass)

	if err := v.Set("width", "12.5"); err != nil {
		t.Fatalf("Set width: %v", err)
	}
	if got := widthProperty.Get(v); got != 12.5 {
		t.Errorf("width = %v, want 12.5", got)
	}

	err := v.Set("width", "wide")
	var conv *errors.ConversionError
	if !stderrors.As(err, &conv) {
		t.Fatalf("Set width=wide error = %v, want ConversionError", err)
	}
	if got := widthProperty.Get(v); got != 12.5 {
		t.Errorf("failed conversion changed width to %v", got)
	}

	if err := v.Set("width", 3); err == nil {
		t.Error("an int for a float64 property should be rejected")
	}

	var cfg *errors.ConfigError
	if err := v.Set("nope", 1); !stderrors.As(err, &cfg) {
		t.Errorf("unknown property error = %v, want ConfigError", err)
	}

	if err := v.Set("text-transform", "UPPERCASE"); err != nil {
		t.Fatalf("Set text-transform: %v", err)
	}
	if got := transformProperty.Get(v); got != transformUppercase {
		t.Errorf("textTransform = %q, want uppercase", got)
	}
	if err := v.Set("textTransform", "sideways"); err == nil {
		t.Error("expected invalid enum to fail")
	}

	if err := v.Set("width", UnsetValue); err != nil {
		t.Fatalf("Set unset: %v", err)
	}
	if got := widthProperty.Get(v); got != 0 {
		t.Errorf("after unset: width = %v, want 0", got)
	}

	if got, ok := v.Get("text-transform"); !ok || got != transformUppercase {
		t.Errorf("Get(text-transform) = %v, %v", got, ok)
	}
}

func TestShorthandSet(t *testing.T) {
	v := NewView(baseClass)

	if err := marginProperty.Set(v, "1 2"); err != nil {
		t.Fatal(err)
	}
	if got := marginProperty.Get(v); got != "1 2 1 2" {
		t.Errorf("margin = %v, want 1 2 1 2", got)
	}

	if err := v.Set("margin", "5 x"); err == nil {
		t.Fatal("expected conversion error")
	}
	if got := marginTopProperty.Get(v); got != 1 {
		t.Errorf("failed shorthand changed marginTop to %v", got)
	}

	marginProperty.Unset(v)
	if got := marginProperty.Get(v); got != "0 0 0 0" {
		t.Errorf("after unset: margin = %v", got)
	}
}

func TestKeyframeLayer(t *testing.T) {
	v := NewView(baseClass)
	opacityProperty.Set(v, 0.5)

	opacityProperty.SetKeyframe(v, 0.1)
	if got := opacityProperty.Get(v); got != 0.1 {
		t.Errorf("keyframe should win: opacity = %v", got)
	}
	if src := opacityProperty.Source(v); src != SourceKeyframe {
		t.Errorf("Source = %v, want keyframe", src)
	}

	opacityProperty.ClearKeyframe(v)
	if got := opacityProperty.Get(v); got != 0.5 {
		t.Errorf("after clearing keyframe: opacity = %v, want 0.5", got)
	}
}

func TestChangeOrder(t *testing.T) {
	var order []string
	prop := NewInheritedProperty(PropertyOptions[int]{
		Name:          "orderProbe",
		AffectsLayout: true,
		ValueChanged: func(v *ViewBase, _, _ int) {
			order = append(order, "callback")
		},
	})
	class := NewClass("OrderProbe", nil)
	class.MustRegister(prop)
	class.NativeBacked(prop)

	owner := &layout.PipelineOwner{OnNeedsFrame: func() { order = append(order, "layout") }}
	parent := NewView(class)
	child := NewView(class)
	tree(parent, child)
	parent.SetPipelineOwner(owner)
	parent.PerformLayout()
	child.PerformLayout()
	owner.FlushLayout()

	peer := &orderPeer{order: &order}
	InitNativeView(parent, peer)
	order = nil

	parent.AddPropertyListener(func(PropertyChangeEvent) { order = append(order, "listener") })
	child.AddPropertyListener(func(PropertyChangeEvent) { order = append(order, "child") })

	prop.Set(parent, 7)

	want := []string{"callback", "native", "listener", "layout", "callback", "child"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

type orderPeer struct{ order *[]string }

func (p *orderPeer) DefaultValue(*Descriptor) (any, bool) { return nil, false }
func (p *orderPeer) SetValue(*Descriptor, any) error {
	*p.order = append(*p.order, "native")
	return nil
}

func TestCallbackPanicReachesCaller(t *testing.T) {
	prop := NewProperty(PropertyOptions[int]{
		Name: "panicProbe",
		ValueChanged: func(*ViewBase, int, int) {
			panic("callback failed")
		},
	})
	v := NewView(nil)

	defer func() {
		if r := recover(); r != "callback failed" {
			t.Errorf("recover() = %v, want callback panic", r)
		}
		if got := prop.Get(v); got != 1 {
			t.Errorf("value should be stored before the callback ran, got %v", got)
		}
	}()
	prop.Set(v, 1)
	t.Fatal("expected panic")
}

func TestReentrantCallback(t *testing.T) {
	mirror := NewProperty(PropertyOptions[string]{Name: "mirror"})
	source := NewProperty(PropertyOptions[string]{
		Name: "mirrorSource",
		ValueChanged: func(v *ViewBase, _, newValue string) {
			mirror.Set(v, newValue+"!")
		},
	})
	v := NewView(nil)
	source.Set(v, "hi")
	if got := mirror.Get(v); got != "hi!" {
		t.Errorf("mirror = %q, want hi!", got)
	}
}

func TestObserve(t *testing.T) {
	v := NewView(labelClass)
	var got []string
	unsubscribe := textProperty.Observe(v, func(oldValue, newValue string) {
		got = append(got, oldValue+"->"+newValue)
	})
	textProperty.Set(v, "a")
	widthProperty.Set(v, 3)
	unsubscribe()
	textProperty.Set(v, "b")

	if len(got) != 1 || got[0] != "->a" {
		t.Errorf("observed %v, want [->a]", got)
	}
}

func TestLayoutRequest(t *testing.T) {
	owner := &layout.PipelineOwner{}
	v := NewView(baseClass)
	v.SetPipelineOwner(owner)
	owner.FlushLayout()

	textProperty.Set(v, "no layout")
	if owner.NeedsLayout() {
		t.Error("text does not affect layout")
	}
	widthProperty.Set(v, 10)
	if !owner.NeedsLayout() || !v.NeedsLayout() {
		t.Error("width change should request layout")
	}
	if n := owner.FlushLayout(); n != 1 {
		t.Errorf("FlushLayout() = %d, want 1", n)
	}
	if v.NeedsLayout() {
		t.Error("PerformLayout should clear the request")
	}
}

func TestUnregisteredProperties(t *testing.T) {
	NewProperty(PropertyOptions[int]{Name: "neverRegistered"})
	found := false
	for _, name := range UnregisteredProperties() {
		if name == "neverRegistered" {
			found = true
		}
		if name == "width" {
			t.Error("width is registered on baseClass")
		}
	}
	if !found {
		t.Error("expected neverRegistered in UnregisteredProperties")
	}
}

func TestSetByNameUnsetText(t *testing.T) {
	v := NewView(baseClass)
	for _, keyword := range []string{"unset", "initial", " UNSET "} {
		if err := v.Set("theme", "dark"); err != nil {
			t.Fatal(err)
		}
		if err := v.Set("theme", keyword); err != nil {
			t.Fatalf("Set(theme, %q) = %v", keyword, err)
		}
		if got := themeProperty.Get(v); got != "light" {
			t.Errorf("%q: theme = %q, want default", keyword, got)
		}
		if got := themeProperty.Source(v); got != SourceDefault {
			t.Errorf("%q: source = %v, want default", keyword, got)
		}
	}

	if err := v.Set("width", "unset"); err != nil {
		t.Errorf("Set(width, unset) = %v, want no conversion error", err)
	}
	if err := v.Set("margin", "5"); err != nil {
		t.Fatal(err)
	}
	if err := v.Set("margin", "initial"); err != nil {
		t.Fatal(err)
	}
	if got := marginTopProperty.Get(v); got != 0 {
		t.Errorf("marginTop = %v after unsetting the shorthand", got)
	}
}
