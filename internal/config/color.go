package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrBadColor  = errors.New("color must be #RRGGBB or #RRGGBBAA")
	ErrBadOffset = errors.New("highlight offset must not be negative")
)

// ParseColor decodes "#RRGGBB" or "#RRGGBBAA" into RGBA bytes.
// Alpha defaults to 0xFF.
func ParseColor(s string) ([4]uint8, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok || (len(digits) != 6 && len(digits) != 8) {
		return [4]uint8{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	rgba := [4]uint8{0, 0, 0, 0xFF}
	copy(rgba[:], raw)
	return rgba, nil
}

// Validate checks the values that cannot be checked by YAML decoding alone.
func (c *Config) Validate() error {
	colors := []struct {
		name, value string
	}{
		{"preview.block_color", c.Preview.BlockColor},
		{"preview.trim_color", c.Preview.TrimColor},
		{"preview.highlight_color", c.Preview.HighlightColor},
	}
	for _, col := range colors {
		if _, err := ParseColor(col.value); err != nil {
			return fmt.Errorf("%s: %w", col.name, err)
		}
	}
	if c.Preview.HighlightOffset < 0 {
		return fmt.Errorf("preview.highlight_offset %g: %w", c.Preview.HighlightOffset, ErrBadOffset)
	}
	return nil
}
