package testing

import (
	"fmt"

	"github.com/go-drift/cascade/pkg/core"
)

// Finder locates views in a tree.
type Finder interface {
	// Matches reports whether v is a match.
	Matches(v core.View) bool
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []core.View
	finder Finder
}

// Find returns every view under root, root included, that f matches, in
// depth-first pre-order.
func Find(root core.View, f Finder) FinderResult {
	var out []core.View
	if f.Matches(root) {
		out = append(out, root)
	}
	root.Base().EachDescendant(func(v core.View) bool {
		if f.Matches(v) {
			out = append(out, v)
		}
		return true
	})
	return FinderResult{views: out, finder: f}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.finder.Description()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.View { return r.views }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.views) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.views) > 0 }

type predicateFinder struct {
	match func(core.View) bool
	desc  string
}

func (f predicateFinder) Matches(v core.View) bool { return f.match(v) }
func (f predicateFinder) Description() string     { return f.desc }

// ByClass matches views of class or a class derived from it.
func ByClass(class *core.Class) Finder {
	return predicateFinder{
		match: func(v core.View) bool {
			return v.Base().Class().IsSubclassOf(class)
		},
		desc: "class " + class.Name(),
	}
}

// ByID matches views with the given CSS id.
func ByID(id string) Finder {
	return predicateFinder{
		match: func(v core.View) bool { return v.Base().ID() == id },
		desc:  "id " + id,
	}
}

// ByCSSClass matches views carrying the CSS class name.
func ByCSSClass(name string) Finder {
	return predicateFinder{
		match: func(v core.View) bool { return v.Base().HasCSSClass(name) },
		desc:  "css class " + name,
	}
}

// ByPredicate matches views for which fn returns true.
func ByPredicate(desc string, fn func(core.View) bool) Finder {
	return predicateFinder{match: fn, desc: desc}
}
