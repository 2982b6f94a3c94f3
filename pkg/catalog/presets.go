package catalog

import (
	"encoding/json"
	"strings"
)

// Preset is a named theme offered by the settings UI.
type Preset struct {
	Name  string
	Theme Theme
}

// MarshalJSON implements json.Marshaler.
func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string `json:"name"`
		Theme Theme  `json:"theme"`
	}{p.Name, p.Theme})
}

func gradient(from, to RGB) Theme {
	return LinearGradient{From: from, To: to}
}

// Presets returns the built-in themes. The first one is the default theme.
func Presets() []Preset {
	return []Preset{
		{Name: "Azure", Theme: DefaultTheme()},
		{Name: "Violet", Theme: gradient(RGB{0x70, 0x28, 0xAC}, RGB{0xAB, 0x59, 0xC7})},
		{Name: "Coral", Theme: gradient(RGB{0xBE, 0x5F, 0x48}, RGB{0xE0, 0xAA, 0x67})},
		{Name: "Teal", Theme: gradient(RGB{0x00, 0x78, 0x74}, RGB{0x59, 0xB1, 0xBA})},
		{Name: "Pink", Theme: gradient(RGB{0xB3, 0x37, 0x7C}, RGB{0xE2, 0x78, 0xB1})},
	}
}

// PresetByName looks up a preset case-insensitively.
func PresetByName(name string) (Theme, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p.Theme, true
		}
	}
	return nil, false
}
