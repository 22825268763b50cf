package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MakeValidator returns a function reporting whether a value is one of
// values.
func MakeValidator[T comparable](values ...T) func(T) bool {
	allowed := slices.Clone(values)
	return func(v T) bool {
		return slices.Contains(allowed, v)
	}
}

// MakeParser returns a converter for enumerations of string kind. Input
// is trimmed and lower-cased before validation.
func MakeParser[T ~string](isValid func(T) bool) func(string) (T, error) {
	return func(text string) (T, error) {
		v := T(strings.ToLower(strings.TrimSpace(text)))
		if !isValid(v) {
			return "", fmt.Errorf("invalid value %q", text)
		}
		return v, nil
	}
}

// ParseFloat converts CSS number text.
func ParseFloat(text string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

// ParseBool converts "true" or "false" in any case.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", text)
}
