package stylesheet

import (
	"errors"
	"strings"

	"github.com/go-drift/cascade/pkg/core"
)

// ErrUnknownProperty marks a declaration no registered property accepts.
var ErrUnknownProperty = errors.New("unknown property")

// Validate converts every declaration of the given sheets with the
// registered descriptors and returns all problems joined. Unknown
// property names are reported even though the cascade ignores them.
func Validate(sheets ...*Sheet) error {
	var errs []error
	for _, s := range sheets {
		for i := range s.Rules {
			r := &s.Rules[i]
			for _, decl := range r.Declarations {
				if err := validateDeclaration(decl); err != nil {
					errs = append(errs, &ParseError{Path: s.Path, Rule: i + 1, Selector: r.Text, Err: err})
				}
			}
		}
	}
	return errors.Join(errs...)
}

func validateDeclaration(decl core.Declaration) error {
	_, css := core.PropertyByCSSName(decl.Property)
	_, shorthand := core.ShorthandByCSSName(decl.Property)
	if css || shorthand {
		scratch := core.NewView(nil)
		return core.ApplyDeclarations(scratch, []core.Declaration{decl})
	}
	d := descriptorNamed(decl.Property)
	if d == nil {
		return &unknownPropertyError{name: decl.Property}
	}
	if text, ok := decl.Value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "unset", "initial":
			return nil
		}
	}
	_, err := d.Convert(decl.Value)
	return err
}

func descriptorNamed(name string) *core.Descriptor {
	for _, d := range core.Descriptors() {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

type unknownPropertyError struct {
	name string
}

func (e *unknownPropertyError) Error() string { return ErrUnknownProperty.Error() + " " + e.name }

func (e *unknownPropertyError) Unwrap() error { return ErrUnknownProperty }
