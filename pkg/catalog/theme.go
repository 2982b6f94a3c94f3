package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a theme color: either RGB or HSL.
type Color interface {
	// Hex returns the color as a "#rrggbb" string.
	Hex() string
	isColor()
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// HSL is a color with hue in degrees (0-360) and saturation and lightness
// in percent (0-100).
type HSL struct {
	H    uint16
	S, L uint8
}

func (RGB) isColor() {}
func (HSL) isColor() {}

// Hex returns the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Hex returns the color as a "#rrggbb" string.
func (c HSL) Hex() string {
	return colorful.Hsl(float64(c.H), float64(c.S)/100, float64(c.L)/100).Clamped().Hex()
}

// MarshalJSON implements json.Marshaler.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		R    uint8  `json:"r"`
		G    uint8  `json:"g"`
		B    uint8  `json:"b"`
	}{"RGB", c.R, c.G, c.B})
}

// MarshalJSON implements json.Marshaler.
func (c HSL) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		H    uint16 `json:"h"`
		S    uint8  `json:"s"`
		L    uint8  `json:"l"`
	}{"HSL", c.H, c.S, c.L})
}

// Theme is the header background: Solid, LinearGradient or RadialGradient.
type Theme interface {
	// CSS returns a CSS background value for the theme.
	CSS() string
	// Primary returns the dominant color of the theme.
	Primary() Color
	isTheme()
}

// Solid is a single-color theme.
type Solid struct {
	Color Color
}

// LinearGradient blends From into To left to right.
type LinearGradient struct {
	From, To Color
}

// RadialGradient blends From at the center into To at the edge.
type RadialGradient struct {
	From, To Color
}

func (Solid) isTheme()          {}
func (LinearGradient) isTheme() {}
func (RadialGradient) isTheme() {}

func (t Solid) CSS() string { return t.Color.Hex() }

func (t LinearGradient) CSS() string {
	return fmt.Sprintf("linear-gradient(to right, %s, %s)", t.From.Hex(), t.To.Hex())
}

func (t RadialGradient) CSS() string {
	return fmt.Sprintf("radial-gradient(circle, %s, %s)", t.From.Hex(), t.To.Hex())
}

func (t Solid) Primary() Color          { return t.Color }
func (t LinearGradient) Primary() Color { return t.From }
func (t RadialGradient) Primary() Color { return t.From }

// MarshalJSON implements json.Marshaler.
func (t Solid) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Color Color  `json:"color"`
	}{"Solid", t.Color})
}

// MarshalJSON implements json.Marshaler.
func (t LinearGradient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		From Color  `json:"from"`
		To   Color  `json:"to"`
	}{"LinearGradient", t.From, t.To})
}

// MarshalJSON implements json.Marshaler.
func (t RadialGradient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		From Color  `json:"from"`
		To   Color  `json:"to"`
	}{"RadialGradient", t.From, t.To})
}

// DefaultTheme returns the theme of a freshly created catalog.
func DefaultTheme() Theme {
	return LinearGradient{
		From: RGB{R: 0x28, G: 0x54, B: 0xB5},
		To:   RGB{R: 0x14, G: 0xC0, B: 0xD3},
	}
}

var errMissingType = errors.New(`missing "type" discriminator`)

// typeTag reads the "type" discriminator of a tagged object.
func typeTag(data []byte) (string, error) {
	var tag struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return "", err
	}
	if tag.Type == nil {
		return "", errMissingType
	}
	return *tag.Type, nil
}

func isNull(data []byte) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// DecodeColor parses a tagged color object.
func DecodeColor(data []byte) (Color, error) {
	if isNull(data) {
		return nil, errors.New("color is required")
	}
	tag, err := typeTag(data)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}

	switch tag {
	case "RGB":
		var raw struct {
			R *uint8 `json:"r"`
			G *uint8 `json:"g"`
			B *uint8 `json:"b"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("RGB color: %w", err)
		}
		if raw.R == nil || raw.G == nil || raw.B == nil {
			return nil, errors.New(`RGB color requires "r", "g" and "b"`)
		}
		return RGB{R: *raw.R, G: *raw.G, B: *raw.B}, nil

	case "HSL":
		var raw struct {
			H *uint16 `json:"h"`
			S *uint8  `json:"s"`
			L *uint8  `json:"l"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("HSL color: %w", err)
		}
		if raw.H == nil || raw.S == nil || raw.L == nil {
			return nil, errors.New(`HSL color requires "h", "s" and "l"`)
		}
		if *raw.H > 360 || *raw.S > 100 || *raw.L > 100 {
			return nil, fmt.Errorf("HSL color out of range: h=%d s=%d l=%d", *raw.H, *raw.S, *raw.L)
		}
		return HSL{H: *raw.H, S: *raw.S, L: *raw.L}, nil

	default:
		return nil, fmt.Errorf("unknown color type %q", tag)
	}
}

// DecodeTheme parses a tagged theme object.
func DecodeTheme(data []byte) (Theme, error) {
	if isNull(data) {
		return nil, errors.New("theme is required")
	}
	tag, err := typeTag(data)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	switch tag {
	case "Solid":
		var raw struct {
			Color json.RawMessage `json:"color"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("Solid theme: %w", err)
		}
		c, err := DecodeColor(raw.Color)
		if err != nil {
			return nil, fmt.Errorf("Solid theme: %w", err)
		}
		return Solid{Color: c}, nil

	case "LinearGradient", "RadialGradient":
		var raw struct {
			From json.RawMessage `json:"from"`
			To   json.RawMessage `json:"to"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s theme: %w", tag, err)
		}
		from, err := DecodeColor(raw.From)
		if err != nil {
			return nil, fmt.Errorf("%s theme from: %w", tag, err)
		}
		to, err := DecodeColor(raw.To)
		if err != nil {
			return nil, fmt.Errorf("%s theme to: %w", tag, err)
		}
		if tag == "LinearGradient" {
			return LinearGradient{From: from, To: to}, nil
		}
		return RadialGradient{From: from, To: to}, nil

	default:
		return nil, fmt.Errorf("unknown theme type %q", tag)
	}
}
