// Package stylesheet loads style rules from YAML or TOML documents and
// matches them against views.
//
// A document lists rules in order; each rule has a selector and a set of
// declarations keyed by CSS property name:
//
//	version: "1.0"
//	rules:
//	  - selector: Label.title
//	    declarations:
//	      font-size: 24
//	      color: navy
//	  - selector: Button:pressed
//	    declarations:
//	      opacity: 0.6
//
// There is no specificity. Matching rules apply in document order and a
// later declaration of the same property wins. A *Sheet is a
// core.StyleScope, so it can be installed on a root view with
// SetStyleScope.
package stylesheet

import (
	"github.com/go-drift/cascade/pkg/core"
)

// Rule is one selector list and its declarations.
type Rule struct {
	// Selectors holds the comma separated alternatives of the rule.
	Selectors []Selector
	// Text is the selector as written.
	Text string
	// Declarations apply in order when any selector matches.
	Declarations []core.Declaration
}

// Matches reports whether any of the rule's selectors matches v.
func (r *Rule) Matches(v core.View) bool {
	for _, s := range r.Selectors {
		if s.Match(v) {
			return true
		}
	}
	return false
}

// Sheet is a parsed stylesheet.
type Sheet struct {
	// Path is the file the sheet was loaded from, if any.
	Path string
	// Version is the canonical semantic version of the document.
	Version string
	Rules   []Rule
}

// Match returns the declarations of every rule matching v in document
// order.
func (s *Sheet) Match(v core.View) []core.Declaration {
	var out []core.Declaration
	for i := range s.Rules {
		if s.Rules[i].Matches(v) {
			out = append(out, s.Rules[i].Declarations...)
		}
	}
	return out
}

// MatchingRules returns the rules that match v.
func (s *Sheet) MatchingRules(v core.View) []*Rule {
	var out []*Rule
	for i := range s.Rules {
		if s.Rules[i].Matches(v) {
			out = append(out, &s.Rules[i])
		}
	}
	return out
}

// Sheets combines several stylesheets; later sheets override earlier ones.
type Sheets []*Sheet

// Match returns the declarations of every sheet in order.
func (ss Sheets) Match(v core.View) []core.Declaration {
	var out []core.Declaration
	for _, s := range ss {
		out = append(out, s.Match(v)...)
	}
	return out
}

var (
	_ core.StyleScope = (*Sheet)(nil)
	_ core.StyleScope = Sheets(nil)
)
