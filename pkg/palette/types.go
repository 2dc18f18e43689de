package palette

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Palette maps material names to display colors.
type Palette struct {
	Parent  string           `json:"parent"`
	Default string           `json:"default"` // material written where nothing else applies
	Colors  map[string]Color `json:"colors"`
}

// Color is an RGB triple in [0,1]. In JSON it is either an array
// [r, g, b], a hex string "#rrggbb", or a reference "@name" to another entry.
type Color struct {
	RGB [3]float32
	Ref string // name of the entry this one copies
}

func (c *Color) UnmarshalJSON(data []byte) error {
	// First, try an array
	var rgb [3]float32
	if err := json.Unmarshal(data, &rgb); err == nil {
		c.RGB = rgb
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(s, "@"):
		c.Ref = strings.TrimPrefix(s, "@")
		return nil
	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return fmt.Errorf("bad hex color %q: %w", s, err)
		}
		c.RGB = [3]float32{
			float32((v>>16)&0xFF) / 255,
			float32((v>>8)&0xFF) / 255,
			float32(v&0xFF) / 255,
		}
		return nil
	}
	return fmt.Errorf("unrecognized color %q", s)
}
