package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/stylesheet"
	"github.com/go-drift/cascade/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "explain",
		Short: "Show how a view's properties resolve",
		Long: `Build a chain of views from compound selectors, root first, style it
with the stylesheet and print the rules that match the last view and
every property that does not hold its default, with the layer supplying
it. Each compound names a built-in class followed by an optional #id,
.classes and :pseudo classes.`,
		Usage: "cascade explain <sheet> <compound>...",
		Run:   runExplain,
	})
}

func runExplain(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("expected a stylesheet and at least one compound selector")
	}
	if _, err := loadConfig(); err != nil {
		return err
	}
	sheet, err := stylesheet.Load(args[0])
	if err != nil {
		return err
	}

	var root, leaf core.View
	for _, text := range args[1:] {
		v, err := buildView(text)
		if err != nil {
			return err
		}
		if leaf == nil {
			root = v
		} else {
			leaf.Base().AddView(v)
		}
		leaf = v
	}
	if err := root.Base().SetStyleScope(sheet); err != nil {
		return err
	}

	base := leaf.Base()
	fmt.Fprintf(stdout, "%s\n\nMatched rules:\n", base)
	matched := sheet.MatchingRules(leaf)
	if len(matched) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for _, r := range matched {
		fmt.Fprintf(stdout, "  %s (%d declarations)\n", r.Text, len(r.Declarations))
	}

	fmt.Fprintln(stdout, "\nValues:")
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	shown := 0
	for _, d := range core.Descriptors() {
		if d.Kind() == core.KindShorthand {
			continue
		}
		src := base.Source(d)
		if src == core.SourceDefault {
			continue
		}
		shown++
		from := ""
		if src == core.SourceInherited {
			from = fmt.Sprintf("from <%d>", base.InheritedFrom(d))
		}
		fmt.Fprintf(tw, "  %s\t%v\t%s\t%s\n", d.Name(), base.Value(d), src, from)
	}
	if shown == 0 {
		fmt.Fprintln(tw, "  (all defaults)")
	}
	return tw.Flush()
}

// buildView creates a view from one compound selector.
func buildView(text string) (core.View, error) {
	sel, err := stylesheet.ParseSelector(text)
	if err != nil {
		return nil, err
	}
	if sel.Type == "" {
		return nil, fmt.Errorf("%q: a class name is required", text)
	}
	v, ok := widgets.New(sel.Type)
	if !ok {
		return nil, fmt.Errorf("%q: unknown class %q", text, sel.Type)
	}
	b := v.Base()
	b.SetID(sel.ID)
	for _, c := range sel.Classes {
		b.SetCSSClasses(b.CSSClasses() + " " + c)
	}
	for _, p := range sel.Pseudo {
		b.AddPseudoClass(p)
	}
	return v, nil
}
