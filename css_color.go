package svgtint

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseCSSColor converts any CSS color (named, rgb(), hsl(), hex) to a
// lowercase 6-digit hex code usable as a tint. Colors that are not fully
// opaque are rejected since the tint has no alpha channel.
func ParseCSSColor(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &InvalidColorError{Color: value}
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidColor, value, err)
	}
	if c.A < 1 {
		return "", fmt.Errorf("%w: %q: alpha is not supported", ErrInvalidColor, value)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B)), nil
}

// ResolveColor accepts a hex code as NormalizeColor does and falls back to
// ParseCSSColor for other CSS color syntax.
func ResolveColor(value string) (string, error) {
	if c, err := NormalizeColor(value); err == nil {
		return c, nil
	}
	return ParseCSSColor(value)
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(f * 255))
}
