package session

import (
	"encoding/json"
	"fmt"
)

// RGB holds one background color as fractions, the way the mobile client
// persisted them.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Theme maps an appearance mode ("light"/"dark") to its wall background.
// Purely local, the server never sees it.
type Theme map[string]RGB

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func DefaultTheme() Theme {
	return Theme{
		ThemeLight: {Red: 0.9, Green: 0.9, Blue: 0.9},
		ThemeDark:  {Red: 0.1, Green: 0.1, Blue: 0.1},
	}
}

// Hex renders the color for lipgloss.
func (c RGB) Hex() string {
	clamp := func(v float64) int {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return int(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.Red), clamp(c.Green), clamp(c.Blue))
}

// Mode returns the background for a mode, falling back to the defaults the
// mobile client used when a slot was never customized.
func (t Theme) Mode(mode string) RGB {
	if c, ok := t[mode]; ok {
		return c
	}
	return DefaultTheme()[mode]
}

func (t Theme) encode() []byte {
	data, _ := json.Marshal(t)
	return data
}

func decodeTheme(data []byte) (Theme, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false
	}
	return t, true
}
