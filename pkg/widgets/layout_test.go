package widgets

import (
	"testing"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/layout"
)

func sized(w, h float64) *View {
	v := NewView()
	WidthProperty.Set(v, layout.Dip(w))
	HeightProperty.Set(v, layout.Dip(h))
	return v
}

func TestStackLayoutVertical(t *testing.T) {
	s := NewStackLayout()
	if err := PaddingProperty.Set(s, "5"); err != nil {
		t.Fatal(err)
	}
	a := sized(100, 20)
	b := sized(50, 30)
	if err := MarginProperty.Set(b, "10 0 0 4"); err != nil {
		t.Fatal(err)
	}
	hidden := sized(10, 10)
	VisibilityProperty.Set(hidden, VisibilityCollapse)
	c := sized(10, 10)
	s.AddView(a)
	s.AddView(b)
	s.AddView(hidden)
	s.AddView(c)

	owner := &layout.PipelineOwner{}
	s.SetPipelineOwner(owner)
	owner.FlushLayout()

	tests := []struct {
		view core.View
		want Rect
	}{
		{a, Rect{X: 5, Y: 5, Width: 100, Height: 20}},
		{b, Rect{X: 9, Y: 35, Width: 50, Height: 30}},
		{c, Rect{X: 5, Y: 65, Width: 10, Height: 10}},
	}
	for _, tt := range tests {
		got, ok := s.Frame(tt.view)
		if !ok || got != tt.want {
			t.Errorf("%s frame = %+v, want %+v", tt.view.Base(), got, tt.want)
		}
	}
	if _, ok := s.Frame(hidden); ok {
		t.Error("collapsed child should not get a frame")
	}
}

func TestStackLayoutRelayoutsOnChildChange(t *testing.T) {
	s := NewStackLayout()
	OrientationProperty.Set(s, OrientationHorizontal)
	a := sized(10, 10)
	b := sized(10, 10)
	s.AddView(a)
	s.AddView(b)

	owner := &layout.PipelineOwner{}
	s.SetPipelineOwner(owner)
	owner.FlushLayout()
	if got, _ := s.Frame(b); got.X != 10 {
		t.Fatalf("b.X = %v, want 10", got.X)
	}

	WidthProperty.Set(a, layout.Dip(40))
	if !owner.NeedsLayout() || !s.NeedsLayout() {
		t.Fatal("a width change should invalidate the stack")
	}
	owner.FlushLayout()
	if got, _ := s.Frame(b); got.X != 40 {
		t.Errorf("b.X = %v, want 40 after relayout", got.X)
	}

	TextProperty.Set(NewLabel(""), "unrelated")
	if owner.NeedsLayout() {
		t.Error("a detached view must not schedule layout")
	}
}

func TestSlider(t *testing.T) {
	s := NewSlider()
	s.SetValue(150)
	if got := s.Value(); got != 100 {
		t.Errorf("Value = %v, want clamped 100", got)
	}
	s.SetRange(0, 200)
	if got := s.Value(); got != 150 {
		t.Errorf("Value = %v, want raw 150 after widening", got)
	}
	s.SetRange(160, 200)
	if got := s.Value(); got != 160 {
		t.Errorf("Value = %v, want 160", got)
	}
	if err := s.Set("value", "abc"); err == nil {
		t.Error("expected a conversion error")
	}
	if got := s.Value(); got != 160 {
		t.Errorf("Value = %v after a rejected set", got)
	}
}
