package stylesheet

import (
	"fmt"
	"strings"

	"github.com/go-drift/cascade/pkg/core"
)

// Selector is a compound selector: an optional type name followed by any
// number of #id, .class and :pseudo parts. "*" matches every view.
type Selector struct {
	Type    string
	ID      string
	Classes []string
	Pseudo  []string
}

// ParseSelector parses one compound selector.
func ParseSelector(text string) (Selector, error) {
	var sel Selector
	s := strings.TrimSpace(text)
	if s == "" {
		return sel, fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(s, " \t>+~[") {
		return sel, fmt.Errorf("selector %q: combinators and attribute selectors are not supported", text)
	}

	if s[0] == '*' {
		s = s[1:]
	} else if isIdentStart(s[0]) {
		n := identLen(s)
		sel.Type, s = s[:n], s[n:]
	}

	for len(s) > 0 {
		marker := s[0]
		n := identLen(s[1:])
		if n == 0 {
			return sel, fmt.Errorf("selector %q: expected a name after %q", text, marker)
		}
		name := s[1 : 1+n]
		s = s[1+n:]
		switch marker {
		case '#':
			if sel.ID != "" {
				return sel, fmt.Errorf("selector %q: more than one id", text)
			}
			sel.ID = name
		case '.':
			sel.Classes = append(sel.Classes, name)
		case ':':
			sel.Pseudo = append(sel.Pseudo, name)
		default:
			return sel, fmt.Errorf("selector %q: unexpected %q", text, marker)
		}
	}
	return sel, nil
}

// ParseSelectorList parses a comma separated list of selectors.
func ParseSelectorList(text string) ([]Selector, error) {
	parts := strings.Split(text, ",")
	out := make([]Selector, 0, len(parts))
	for _, p := range parts {
		sel, err := ParseSelector(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// Match reports whether v satisfies every part of the selector. The type
// matches the view's class or any class it derives from.
func (s Selector) Match(v core.View) bool {
	base := v.Base()
	if s.Type != "" && !matchesType(base, s.Type) {
		return false
	}
	if s.ID != "" && base.ID() != s.ID {
		return false
	}
	for _, c := range s.Classes {
		if !base.HasCSSClass(c) {
			return false
		}
	}
	for _, p := range s.Pseudo {
		if !base.HasPseudoClass(p) {
			return false
		}
	}
	return true
}

func (s Selector) String() string {
	var b strings.Builder
	if s.Type == "" && s.ID == "" && len(s.Classes) == 0 && len(s.Pseudo) == 0 {
		return "*"
	}
	b.WriteString(s.Type)
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	for _, p := range s.Pseudo {
		b.WriteString(":" + p)
	}
	return b.String()
}

func matchesType(v *core.ViewBase, name string) bool {
	if v.Class() == nil {
		return v.ClassName() == name
	}
	for c := v.Class(); c != nil; c = c.Parent() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if !isIdentStart(c) && (c < '0' || c > '9') {
			break
		}
		n++
	}
	return n
}
