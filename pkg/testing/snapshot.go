package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/cascade/pkg/core"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the resolved property values of a view tree.
type Snapshot struct {
	Root *ViewNode `json:"root"`
}

// ViewNode is one view in a snapshot. Props maps each property that does
// not resolve to its default to "value (source)".
type ViewNode struct {
	Type     string            `json:"type"`
	ID       string            `json:"id,omitempty"`
	Classes  string            `json:"classes,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*ViewNode       `json:"children,omitempty"`
}

// CaptureSnapshot records root and its descendants.
func CaptureSnapshot(root core.View) *Snapshot {
	return &Snapshot{Root: captureView(root.Base())}
}

func captureView(v *core.ViewBase) *ViewNode {
	node := &ViewNode{Type: v.ClassName(), ID: v.ID(), Classes: v.CSSClasses()}
	for _, d := range core.Descriptors() {
		if d.Kind() == core.KindShorthand {
			continue
		}
		src := v.Source(d)
		if src == core.SourceDefault {
			continue
		}
		if node.Props == nil {
			node.Props = make(map[string]string)
		}
		node.Props[d.Name()] = fmt.Sprintf("%v (%s)", v.Value(d), src)
	}
	v.EachChild(func(c core.View) bool {
		node.Children = append(node.Children, captureView(c.Base()))
		return true
	})
	return node
}

// MatchesFile compares the snapshot with the golden file at path. With
// CASCADE_UPDATE_SNAPSHOTS=1 it rewrites the file instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("CASCADE_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: CASCADE_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: CASCADE_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes the snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff against other, or "" when they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
