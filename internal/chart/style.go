package chart

import "image/color"

// Group identifies one of the two compared subpopulations.
type Group int

const (
	Regular Group = iota
	Super
)

func (g Group) String() string {
	if g == Super {
		return "super"
	}
	return "regular"
}

// GroupStyle is the legend label and color used for every mark of a group.
type GroupStyle struct {
	Label string
	Color color.RGBA
}

// Style maps each group to its GroupStyle. Legends are built from the same
// mapping that colors the series, so a label always matches its color.
type Style struct {
	Regular GroupStyle
	Super   GroupStyle
}

var (
	// ColorRegular is the matplotlib "C0" blue.
	ColorRegular = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	// ColorSuper is "darkorange".
	ColorSuper = color.RGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}
)

// DefaultStyle returns the conventional labels and colors.
func DefaultStyle() Style {
	return Style{
		Regular: GroupStyle{Label: "Regular hosts", Color: ColorRegular},
		Super:   GroupStyle{Label: "Superhosts", Color: ColorSuper},
	}
}

// For returns the style of g.
func (s Style) For(g Group) GroupStyle {
	if g == Super {
		return s.Super
	}
	return s.Regular
}

func (s Style) orDefault() Style {
	if s == (Style{}) {
		return DefaultStyle()
	}
	return s
}
