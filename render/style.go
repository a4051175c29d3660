package render

import (
	"fmt"
	"image/color"
)

// Style selects the color palette a QR code is drawn with.
type Style string

const (
	StyleDefault    Style = "default"
	StyleAnime      Style = "anime"
	StyleWatercolor Style = "watercolor"
	StyleDigital    Style = "digital"
	StyleFantasy    Style = "fantasy"
	StyleMinimalist Style = "minimalist"
	StyleNeon       Style = "neon"
)

// Palette is the foreground/background pair used to draw a QR code.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// FgHex returns the foreground color as #RRGGBB.
func (p Palette) FgHex() string { return hexColor(p.Foreground) }

// BgHex returns the background color as #RRGGBB.
func (p Palette) BgHex() string { return hexColor(p.Background) }

var defaultPalette = Palette{
	Foreground: color.RGBA{0x00, 0x00, 0x00, 0xff},
	Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
}

var palettes = map[Style]Palette{
	StyleDefault:    defaultPalette,
	StyleAnime:      {color.RGBA{0xff, 0x6b, 0x9d, 0xff}, color.RGBA{0xff, 0xe5, 0xf1, 0xff}},
	StyleWatercolor: {color.RGBA{0x4a, 0x90, 0xe2, 0xff}, color.RGBA{0xe8, 0xf4, 0xfd, 0xff}},
	StyleDigital:    {color.RGBA{0x00, 0xd4, 0xaa, 0xff}, color.RGBA{0xe6, 0xff, 0xf7, 0xff}},
	StyleFantasy:    {color.RGBA{0x9b, 0x59, 0xb6, 0xff}, color.RGBA{0xf4, 0xe6, 0xff, 0xff}},
	StyleMinimalist: {color.RGBA{0x2c, 0x3e, 0x50, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff}},
	StyleNeon:       {color.RGBA{0x00, 0xff, 0x88, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}},
}

// order is the display order used by Styles.
var order = []Style{
	StyleDefault,
	StyleAnime,
	StyleWatercolor,
	StyleDigital,
	StyleFantasy,
	StyleMinimalist,
	StyleNeon,
}

// Palette resolves the style to its colors. Unknown styles get black on white.
func (s Style) Palette() Palette {
	if p, ok := palettes[s]; ok {
		return p
	}
	return defaultPalette
}

// Known reports whether s is one of the built-in styles.
func (s Style) Known() bool {
	_, ok := palettes[s]
	return ok
}

// Styles returns all built-in styles in display order.
func Styles() []Style {
	out := make([]Style, len(order))
	copy(out, order)
	return out
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
