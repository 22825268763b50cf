package core

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/go-drift/cascade/pkg/errors"
)

func TestCascadeTransitionsOnce(t *testing.T) {
	v := NewView(baseClass)
	events := record(v)

	mustApply(t, v, Declaration{Property: "opacity", Value: "0.5"})
	mustApply(t, v, Declaration{Property: "opacity", Value: "0.8"})

	want := "opacity:1->0.5 opacity:0.5->0.8"
	if got := events.String(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestCascadeResetsBeforeSets(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v,
		Declaration{Property: "margin-top", Value: "1"},
		Declaration{Property: "opacity", Value: "0.5"},
	)
	events := record(v)

	mustApply(t, v,
		Declaration{Property: "opacity", Value: "0.7"},
		Declaration{Property: "margin-left", Value: "4"},
	)

	want := "marginTop:1->0 opacity:0.5->0.7 marginLeft:0->4"
	if got := events.String(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestCascadeSkipsUnchanged(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v, Declaration{Property: "opacity", Value: "0.5"})
	events := record(v)

	mustApply(t, v, Declaration{Property: "opacity", Value: "0.50"})
	if len(events.events) != 0 {
		t.Errorf("re-applying an equal value fired %q", events)
	}
}

func TestCascadeLaterDeclarationWins(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v,
		Declaration{Property: "opacity", Value: "0.2"},
		Declaration{Property: "opacity", Value: "0.3"},
	)
	if got := opacityProperty.Get(v); got != 0.3 {
		t.Errorf("opacity = %v, want 0.3", got)
	}
}

func TestCascadeConversionError(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v, Declaration{Property: "opacity", Value: "0.5"})

	err := ApplyDeclarations(v, []Declaration{
		{Property: "opacity", Value: "cloudy"},
		{Property: "width", Value: "10"},
	})
	var conv *errors.ConversionError
	if !stderrors.As(err, &conv) {
		t.Fatalf("err = %v, want ConversionError", err)
	}
	if conv.Value != "cloudy" {
		t.Errorf("ConversionError.Value = %v, want cloudy", conv.Value)
	}
	if got := opacityProperty.Get(v); got != 0.5 {
		t.Errorf("opacity = %v, want previous 0.5", got)
	}
	if got := widthProperty.Get(v); got != 10 {
		t.Errorf("width = %v, want 10 from the valid declaration", got)
	}
	if src := widthProperty.Source(v); src != SourceCss {
		t.Errorf("width source = %v, want css", src)
	}

	// The kept value is still tracked and resets when the rule goes away.
	mustApply(t, v)
	if got := opacityProperty.Get(v); got != 1 {
		t.Errorf("opacity = %v, want default after reset", got)
	}
}

func TestCascadeShorthand(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v, Declaration{Property: "margin", Value: "1 2 3 4"})
	if got := marginProperty.Get(v); got != "1 2 3 4" {
		t.Fatalf("margin = %v", got)
	}

	err := ApplyDeclarations(v, []Declaration{{Property: "margin", Value: "9 bogus"}})
	if err == nil {
		t.Fatal("expected conversion error")
	}
	if got := marginProperty.Get(v); got != "1 2 3 4" {
		t.Errorf("failed shorthand must keep previous longhands, margin = %v", got)
	}

	mustApply(t, v,
		Declaration{Property: "margin", Value: "5"},
		Declaration{Property: "margin-left", Value: "0"},
	)
	if got := marginProperty.Get(v); got != "5 5 5 0" {
		t.Errorf("longhand after shorthand: margin = %v, want 5 5 5 0", got)
	}

	mustApply(t, v, Declaration{Property: "margin", Value: "5"}, Declaration{Property: "margin", Value: "unset"})
	if got := marginProperty.Get(v); got != "0 0 0 0" {
		t.Errorf("unset shorthand: margin = %v", got)
	}
}

func TestCascadeUnsetKeywords(t *testing.T) {
	v := NewView(baseClass)
	for _, keyword := range []any{"unset", "initial", " UNSET ", UnsetValue} {
		mustApply(t, v, Declaration{Property: "opacity", Value: "0.4"})
		mustApply(t, v,
			Declaration{Property: "opacity", Value: "0.4"},
			Declaration{Property: "opacity", Value: keyword},
		)
		if got := opacityProperty.Get(v); got != 1 {
			t.Errorf("%v: opacity = %v, want default", keyword, got)
		}
	}
}

func TestCascadeTypedAndPlainValues(t *testing.T) {
	v := NewView(labelClass)
	mustApply(t, v,
		Declaration{Property: "opacity", Value: 0.25},
		Declaration{Property: "text", Value: "from css"},
		Declaration{Property: "unknown-thing", Value: "ignored"},
	)
	if got := opacityProperty.Get(v); got != 0.25 {
		t.Errorf("opacity = %v", got)
	}
	if got := textProperty.Get(v); got != "from css" {
		t.Errorf("text = %q", got)
	}
	textProperty.Set(v, "local")
	mustApply(t, v)
	if got := textProperty.Get(v); got != "local" {
		t.Errorf("reset must not touch local values, text = %q", got)
	}
}

func TestResetCSSProperties(t *testing.T) {
	v := NewView(baseClass)
	mustApply(t, v,
		Declaration{Property: "opacity", Value: "0.5"},
		Declaration{Property: "margin", Value: "3"},
	)
	marginTopProperty.Set(v, 8)

	ResetCSSProperties(v.Style())
	if got := opacityProperty.Get(v); got != 1 {
		t.Errorf("opacity = %v, want default", got)
	}
	if got := marginProperty.Get(v); got != "8 0 0 0" {
		t.Errorf("margin = %v, want local top only", got)
	}
}

// classScope matches views by class name and CSS class, in rule order.
type classScope struct {
	rules []scopeRule
}

type scopeRule struct {
	match func(*ViewBase) bool
	decls []Declaration
}

func (s *classScope) Match(v View) []Declaration {
	var out []Declaration
	for _, r := range s.rules {
		if r.match(v.Base()) {
			out = append(out, r.decls...)
		}
	}
	return out
}

func TestStyleScopeLifecycle(t *testing.T) {
	scope := &classScope{rules: []scopeRule{
		{
			match: func(v *ViewBase) bool { return v.ClassName() == "Label" },
			decls: []Declaration{{Property: "font-size", Value: "14"}},
		},
		{
			match: func(v *ViewBase) bool { return v.HasCSSClass("faded") },
			decls: []Declaration{{Property: "opacity", Value: "0.3"}},
		},
		{
			match: func(v *ViewBase) bool { return v.HasPseudoClass("pressed") },
			decls: []Declaration{{Property: "opacity", Value: "0.9"}},
		},
		{
			match: func(v *ViewBase) bool { return v.ID() == "title" },
			decls: []Declaration{{Property: "text-transform", Value: "uppercase"}},
		},
	}}

	root := NewView(baseClass)
	if err := root.SetStyleScope(scope); err != nil {
		t.Fatal(err)
	}

	label := NewView(labelClass)
	root.AddView(label)
	if got := fontSizeProperty.Get(label); got != 14 {
		t.Errorf("attached label fontSize = %v, want 14", got)
	}
	if label.StyleScope() != StyleScope(scope) {
		t.Error("child should inherit the scope")
	}

	label.SetCSSClasses("big  faded")
	if got := opacityProperty.Get(label); got != 0.3 {
		t.Errorf("class change: opacity = %v, want 0.3", got)
	}
	if got := label.CSSClasses(); got != "big faded" {
		t.Errorf("CSSClasses = %q", got)
	}

	label.AddPseudoClass("pressed")
	if got := opacityProperty.Get(label); got != 0.9 {
		t.Errorf("pressed: opacity = %v, want 0.9", got)
	}
	label.DeletePseudoClass("pressed")
	if got := opacityProperty.Get(label); got != 0.3 {
		t.Errorf("released: opacity = %v, want 0.3", got)
	}

	label.SetID("title")
	if got := transformProperty.Get(label); got != transformUppercase {
		t.Errorf("id change: textTransform = %q", got)
	}

	root.RemoveView(label)
	if got := opacityProperty.Get(label); got != 1 {
		t.Errorf("removed label opacity = %v, want default", got)
	}
	if label.StyleScope() != nil {
		t.Error("removed label should drop the inherited scope")
	}
}

func TestOwnScopeSurvivesRemoval(t *testing.T) {
	outer := &classScope{rules: []scopeRule{{
		match: func(*ViewBase) bool { return true },
		decls: []Declaration{{Property: "opacity", Value: "0.5"}},
	}}}
	inner := &classScope{rules: []scopeRule{{
		match: func(*ViewBase) bool { return true },
		decls: []Declaration{{Property: "opacity", Value: "0.7"}},
	}}}

	root := NewView(baseClass)
	panel := NewView(baseClass)
	leaf := NewView(baseClass)
	panel.AddView(leaf)
	if err := panel.SetStyleScope(inner); err != nil {
		t.Fatal(err)
	}
	if err := root.SetStyleScope(outer); err != nil {
		t.Fatal(err)
	}
	root.AddView(panel)

	if got := opacityProperty.Get(leaf); got != 0.7 {
		t.Errorf("leaf opacity = %v, want inner scope 0.7", got)
	}
	root.RemoveView(panel)
	if got := opacityProperty.Get(leaf); got != 0.7 {
		t.Errorf("own scope should survive removal, opacity = %v", got)
	}
}

func TestInsertViewReportsCascadeErrors(t *testing.T) {
	var reported []*errors.CascadeError
	errors.SetHandler(&captureHandler{errs: &reported})
	defer errors.SetHandler(nil)

	root := NewView(baseClass)
	scope := StyleScopeFunc(func(View) []Declaration {
		return []Declaration{{Property: "opacity", Value: "lots"}}
	})
	_ = root.SetStyleScope(scope)
	root.AddView(NewView(baseClass))

	if len(reported) == 0 {
		t.Fatal("expected the conversion error to be reported")
	}
	if reported[len(reported)-1].Kind != errors.KindConversion {
		t.Errorf("Kind = %v, want conversion", reported[len(reported)-1].Kind)
	}
}

type captureHandler struct {
	errs *[]*errors.CascadeError
}

func (h *captureHandler) HandleError(err *errors.CascadeError) { *h.errs = append(*h.errs, err) }
func (h *captureHandler) HandlePanic(*errors.PanicError)       {}

func TestTreeOperations(t *testing.T) {
	root := NewView(baseClass)
	a := NewView(labelClass)
	b := NewView(baseClass)
	c := NewView(labelClass)
	tree(root, tree(a, c), b)
	c.SetID("deep")

	if got := root.GetViewByID("deep"); got != View(c) {
		t.Errorf("GetViewByID = %v, want %v", got, c)
	}
	if got := root.GetViewByID("missing"); got != nil {
		t.Errorf("GetViewByID(missing) = %v", got)
	}
	if got := c.GetAncestor(labelClass); got != View(a) {
		t.Errorf("GetAncestor(Label) = %v, want %v", got, a)
	}
	if got := c.GetAncestor(baseClass); got != View(a) {
		t.Errorf("GetAncestor(Base) = %v, want %v", got, a)
	}
	if got := c.Root(); got != View(root) {
		t.Errorf("Root = %v", got)
	}

	var visited []string
	root.EachDescendant(func(v View) bool {
		visited = append(visited, v.Base().ClassName())
		return true
	})
	if got := strings.Join(visited, ","); got != "Label,Label,Base" {
		t.Errorf("EachDescendant order = %s", got)
	}

	root.InsertView(NewView(nil), 0)
	if got := root.Children()[0].Base().ClassName(); got != "View" {
		t.Errorf("InsertView(0) put %s first", got)
	}
	if c.Depth() != 2 {
		t.Errorf("c depth = %d, want 2", c.Depth())
	}

	for name, fn := range map[string]func(){
		"double parent": func() { b.AddView(c) },
		"cycle":         func() { c.AddView(root) },
		"self":          func() { c.AddView(c) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}

	root.RemoveChildren()
	if root.ChildCount() != 0 {
		t.Errorf("ChildCount = %d after RemoveChildren", root.ChildCount())
	}
	if !slices.Equal(a.Children(), []View{c}) {
		t.Error("RemoveChildren must not detach grandchildren")
	}
}

func mustApply(t *testing.T, v View, decls ...Declaration) {
	t.Helper()
	if err := ApplyDeclarations(v, decls); err != nil {
		t.Fatalf("ApplyDeclarations: %v", err)
	}
}
