package beatmap

import "cmp"

// Colour is an RGB triplet.
type Colour struct{ R, G, B int }

// Compare orders colours by red, then green, then blue.
func (c Colour) Compare(o Colour) int {
	if r := cmp.Compare(c.R, o.R); r != 0 {
		return r
	}
	if r := cmp.Compare(c.G, o.G); r != 0 {
		return r
	}
	return cmp.Compare(c.B, o.B)
}

// ColoursSection holds the combo palette and slider colour overrides.
type ColoursSection struct {
	// Combos is ordered by the N of the ComboN keys.
	Combos              []Colour
	SliderBody          Colour
	SliderTrackOverride Colour
	SliderBorder        Colour
}

func DefaultColours() ColoursSection {
	return ColoursSection{}
}
