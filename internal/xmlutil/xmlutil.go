// Package xmlutil provides attribute helpers shared by the profile codec
// and the action bindings.
package xmlutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Attr returns the value of a mandatory attribute. A missing attribute is
// an error; an empty value is not.
func Attr(e *etree.Element, name string) (string, error) {
	attr := e.SelectAttr(name)
	if attr == nil {
		return "", fmt.Errorf("element <%s> is missing attribute %q", e.Tag, name)
	}
	return attr.Value, nil
}

// IntAttr returns the value of a mandatory integer attribute.
func IntAttr(e *etree.Element, name string) (int64, error) {
	raw, err := Attr(e, name)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %q of <%s> is not an integer: %q", name, e.Tag, raw)
	}
	return value, nil
}

// FloatAttr returns the value of a mandatory float attribute.
func FloatAttr(e *etree.Element, name string) (float64, error) {
	raw, err := Attr(e, name)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %q of <%s> is not a number: %q", name, e.Tag, raw)
	}
	return value, nil
}

// ParseBool parses a profile boolean literal. Accepted forms are the
// strings "True"/"False" (case-insensitive) and the integers 0/1; anything
// else is an error. There is no tolerant default.
func ParseBool(value string) (bool, error) {
	if n, err := strconv.Atoi(value); err == nil {
		switch n {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", value)
		}
	}
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", value)
	}
}

// BoolAttr returns the value of a mandatory boolean attribute.
func BoolAttr(e *etree.Element, name string) (bool, error) {
	raw, err := Attr(e, name)
	if err != nil {
		return false, err
	}
	value, err := ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("attribute %q of <%s>: %w", name, e.Tag, err)
	}
	return value, nil
}

// OptionalBoolAttr is BoolAttr with a default for the absent case. A
// present but malformed value is still an error.
func OptionalBoolAttr(e *etree.Element, name string, def bool) (bool, error) {
	if e.SelectAttr(name) == nil {
		return def, nil
	}
	return BoolAttr(e, name)
}

// FormatBool renders a boolean in the document's "True"/"False" form.
func FormatBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
