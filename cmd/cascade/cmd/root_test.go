package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/cascade/pkg/errors"
)

const appSheet = `
version: "1.0"
rules:
  - selector: StackLayout
    declarations:
      font-size: 20
  - selector: Label#title, Button
    declarations:
      opacity: 0.5
  - selector: Label:disabled
    declarations:
      opacity: 0.2
`

// run executes the CLI and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() {
		stdout = os.Stdout
		errors.SetHandler(nil)
	})
	err := Execute(args)
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHelpAndVersion(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "Commands:"},
		{[]string{"--help"}, "explain"},
		{[]string{"-v"}, "cascade version " + Version},
		{[]string{"lint", "-h"}, "cascade lint [sheet...]"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		if err != nil {
			t.Errorf("%v: %v", tt.args, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("%v: output missing %q:\n%s", tt.args, tt.want, out)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := run(t, "paint"); err == nil {
		t.Error("expected an error")
	}
	if _, err := run(t, "lint", "--config"); err == nil {
		t.Error("--config without a value should fail")
	}
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "app.yaml", appSheet)
	bad := writeFile(t, dir, "bad.toml", `
[[rules]]
selector = "Label"
[rules.declarations]
font-size = "huge"
no-such-thing = 1
`)

	out, err := run(t, "lint", good)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 stylesheet(s), 3 rule(s): ok") {
		t.Errorf("output = %q", out)
	}

	_, err = run(t, "lint", good, bad)
	if err == nil {
		t.Fatal("expected lint errors")
	}
	for _, want := range []string{"fontSize", "huge", "no-such-thing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLintUsesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yaml", appSheet)
	cfg := writeFile(t, dir, "cascade.yaml", "stylesheets:\n  - app.yaml\n")

	out, err := run(t, "--config", cfg, "lint")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("output = %q", out)
	}

	empty := writeFile(t, dir, "empty.toml", "")
	if _, err := run(t, "--config="+empty, "lint"); err == nil {
		t.Error("expected an error without stylesheets")
	}
}

func TestProps(t *testing.T) {
	out, err := run(t, "props", "Label")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"text", "font-size", "opacity", "native"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "orientation") {
		t.Error("Label must not list StackLayout properties")
	}

	all, err := run(t, "props")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all, "orientation") || !strings.Contains(all, "maxValue") {
		t.Errorf("props without a class should list everything:\n%s", all)
	}

	if _, err := run(t, "props", "Nope"); err == nil {
		t.Error("expected an unknown class error")
	}
}

func TestExplain(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "app.yaml", appSheet)
	t.Chdir(dir)

	out, err := run(t, "explain", sheet, "StackLayout", "Label#title")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Label#title", "Label#title, Button (1 declarations)", "opacity", "css", "fontSize", "inherited"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Label:disabled") {
		t.Error("the :disabled rule must not match an enabled label")
	}
}

func TestExplainErrors(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "app.yaml", appSheet)
	t.Chdir(dir)

	tests := [][]string{
		{"explain", sheet},
		{"explain", sheet, ".title"},
		{"explain", sheet, "Widget"},
		{"explain", sheet, "Label Button"},
		{"explain", filepath.Join(dir, "missing.yaml"), "Label"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}
