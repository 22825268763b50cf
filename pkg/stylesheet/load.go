package stylesheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cascade/pkg/core"
)

// Format identifies a stylesheet encoding.
type Format int

const (
	// FormatYAML is a YAML document.
	FormatYAML Format = iota
	// FormatTOML is a TOML document with a [[rules]] array of tables.
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%s: unknown stylesheet extension", path)
	}
}

// DefaultVersion is assumed for documents without a version.
const DefaultVersion = "v1.0.0"

// ErrUnsupportedVersion is returned for documents outside major version 1.
var ErrUnsupportedVersion = errors.New("unsupported stylesheet version")

// ParseError locates a problem in a stylesheet document.
type ParseError struct {
	Path     string
	Rule     int
	Selector string
	Err      error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<stylesheet>"
	}
	if e.Rule > 0 {
		return fmt.Sprintf("%s: rule %d (%s): %v", where, e.Rule, e.Selector, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the stylesheet at path.
func Load(path string) (*Sheet, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sheet, err := Parse(data, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	sheet.Path = path
	return sheet, nil
}

// LoadAll loads every path in order.
func LoadAll(paths ...string) (Sheets, error) {
	sheets := make(Sheets, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

type rawRule struct {
	selector     string
	declarations []core.Declaration
}

// Parse decodes a stylesheet document.
func Parse(data []byte, format Format) (*Sheet, error) {
	var (
		version string
		rules   []rawRule
		err     error
	)
	switch format {
	case FormatYAML:
		version, rules, err = decodeYAML(data)
	case FormatTOML:
		version, rules, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("unknown stylesheet format %d", format)
	}
	if err != nil {
		return nil, err
	}

	canonical, err := checkVersion(version)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	sheet := &Sheet{Version: canonical, Rules: make([]Rule, 0, len(rules))}
	for i, r := range rules {
		selectors, err := ParseSelectorList(r.selector)
		if err != nil {
			return nil, &ParseError{Rule: i + 1, Selector: r.selector, Err: err}
		}
		sheet.Rules = append(sheet.Rules, Rule{
			Selectors:    selectors,
			Text:         strings.TrimSpace(r.selector),
			Declarations: r.declarations,
		})
	}
	return sheet, nil
}

// checkVersion canonicalizes version and rejects anything outside v1.
func checkVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if v == "" {
		return DefaultVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", version)
	}
	if semver.Major(v) != "v1" {
		return "", fmt.Errorf("%w %s", ErrUnsupportedVersion, semver.Canonical(v))
	}
	return semver.Canonical(v), nil
}

type yamlDocument struct {
	Version string     `yaml:"version"`
	Rules   []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Selector     string          `yaml:"selector"`
	Declarations declarationList `yaml:"declarations"`
}

// declarationList keeps YAML mapping order.
type declarationList []core.Declaration

func (d *declarationList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: declarations must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %s must be a scalar", value.Line, key.Value)
		}
		*d = append(*d, core.Declaration{Property: key.Value, Value: value.Value})
	}
	return nil
}

func decodeYAML(data []byte) (string, []rawRule, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", nil, err
	}
	rules := make([]rawRule, len(doc.Rules))
	for i, r := range doc.Rules {
		rules[i] = rawRule{selector: r.Selector, declarations: r.Declarations}
	}
	return doc.Version, rules, nil
}

type tomlDocument struct {
	Version string     `toml:"version"`
	Rules   []tomlRule `toml:"rules"`
}

type tomlRule struct {
	Selector     string         `toml:"selector"`
	Declarations map[string]any `toml:"declarations"`
}

// decodeTOML reads [[rules]] tables. TOML tables are unordered, so
// declarations apply in name order; a shorthand sorts before its
// longhands.
func decodeTOML(data []byte) (string, []rawRule, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", nil, err
	}
	rules := make([]rawRule, len(doc.Rules))
	for i, r := range doc.Rules {
		names := make([]string, 0, len(r.Declarations))
		for name := range r.Declarations {
			names = append(names, name)
		}
		sort.Strings(names)
		decls := make([]core.Declaration, 0, len(names))
		for _, name := range names {
			decls = append(decls, core.Declaration{Property: name, Value: tomlText(r.Declarations[name])})
		}
		rules[i] = rawRule{selector: r.Selector, declarations: decls}
	}
	return doc.Version, rules, nil
}

func tomlText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = tomlText(p)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}
