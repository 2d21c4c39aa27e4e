package domain

// Color is a tab-group color as understood by the browser host.
type Color string

const (
	Grey   Color = "grey"
	Blue   Color = "blue"
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
	Pink   Color = "pink"
	Purple Color = "purple"
	Cyan   Color = "cyan"
	Orange Color = "orange"
)

// Colors lists every color the host accepts, in palette order.
var Colors = []Color{Grey, Blue, Red, Yellow, Green, Pink, Purple, Cyan, Orange}

// Valid reports whether c is one of the host-accepted colors.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// PaletteColor cycles through the palette by index. Used to assign a
// distinct color to buckets that carry no explicit rule color.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Colors[i%len(Colors)]
}
