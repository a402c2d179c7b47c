package svgtint

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultColor is the tint used when no color is configured.
const DefaultColor = "#000"

// ErrInvalidColor reports a tint color that is not a 3- or 6-digit hex code.
var ErrInvalidColor = errors.New("tint color must be a valid hex code")

// InvalidColorError describes a rejected tint color.
type InvalidColorError struct {
	Color string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidColor, e.Color)
}

// Is reports whether target is ErrInvalidColor.
func (e *InvalidColorError) Is(target error) bool {
	return target == ErrInvalidColor
}

// Style is the normalized, immutable tint configuration.
type Style struct {
	Color  string
	Fill   bool
	Stroke bool
}

// Options is the configuration record form of a tint. Nil Fill or Stroke
// means the clause is enabled.
type Options struct {
	Color  string `yaml:"color" json:"color"`
	Fill   *bool  `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke *bool  `yaml:"stroke,omitempty" json:"stroke,omitempty"`
}

// DefaultOptions returns Options tinting both fill and stroke with DefaultColor.
func DefaultOptions() Options {
	return Options{Color: DefaultColor}
}

// ParseStyle normalizes and validates o.
func ParseStyle(o Options) (Style, error) {
	color, err := NormalizeColor(o.Color)
	if err != nil {
		return Style{}, err
	}
	st := Style{Color: color, Fill: true, Stroke: true}
	if o.Fill != nil {
		st.Fill = *o.Fill
	}
	if o.Stroke != nil {
		st.Stroke = *o.Stroke
	}
	return st, nil
}

// NormalizeColor trims color, prefixes it with '#' when missing and checks
// that exactly 3 or 6 hex digits follow. Letter case is preserved.
func NormalizeColor(color string) (string, error) {
	c := strings.TrimSpace(color)
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if !isHexColor(c) {
		return "", &InvalidColorError{Color: color}
	}
	return c, nil
}

func isHexColor(c string) bool {
	if len(c) != 4 && len(c) != 7 {
		return false
	}
	if c[0] != '#' {
		return false
	}
	for i := 1; i < len(c); i++ {
		if !isHexDigit(c[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'f':
		return true
	case b >= 'A' && b <= 'F':
		return true
	}
	return false
}

// Block returns the <style> element injected after the opening svg tag.
func (s Style) Block() string {
	return string(s.AppendBlock(nil))
}

// AppendBlock appends the style element to dst.
func (s Style) AppendBlock(dst []byte) []byte {
	dst = append(dst, "<style>*{"...)
	if s.Fill {
		dst = append(dst, "fill:"...)
		dst = append(dst, s.Color...)
		dst = append(dst, "!important;"...)
	}
	if s.Stroke {
		dst = append(dst, "stroke:"...)
		dst = append(dst, s.Color...)
		dst = append(dst, "!important;"...)
	}
	return append(dst, "}</style>"...)
}
