package chartfile

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an RGBA color written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

// ParseColor parses a hex color with an optional leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// ToRGBA returns c as a color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA(c)
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Decode lets envconfig read a Color from the environment.
func (c *Color) Decode(value string) error {
	parsed, err := ParseColor(value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
