package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "props",
		Short: "List property descriptors",
		Long: `List the properties of a built-in view class, or every declared
property when no class is given. Style properties apply to every class.`,
		Usage: "cascade props [class]",
		Run:   runProps,
	})
}

func runProps(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one class name, got %d", len(args))
	}

	var (
		descs []*core.Descriptor
		class *core.Class
	)
	if len(args) == 0 {
		descs = core.Descriptors()
	} else {
		var ok bool
		class, ok = widgets.ClassByName(args[0])
		if !ok {
			return fmt.Errorf("unknown class %q", args[0])
		}
		descs = class.Properties()
		for _, d := range core.Descriptors() {
			if d.Kind().IsCSS() {
				descs = append(descs, d)
			}
		}
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCSS\tKIND\tTYPE\tDEFAULT\tFLAGS")
	for _, d := range descs {
		css := d.CSSName()
		if css == "" {
			css = "-"
		}
		typ := "-"
		if d.Type() != nil {
			typ = d.Type().String()
		}
		def := "-"
		if d.Kind() != core.KindShorthand {
			def = fmt.Sprint(d.DefaultValue())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Name(), css, d.Kind(), typ, def, flags(d, class))
	}
	return tw.Flush()
}

func flags(d *core.Descriptor, class *core.Class) string {
	out := ""
	if d.AffectsLayout() {
		out += "layout "
	}
	if class != nil && class.IsNativeBacked(d) {
		out += "native "
	}
	if out == "" {
		return "-"
	}
	return out[:len(out)-1]
}
