package parser

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
)

type colourKeyKind int

const (
	colourKeyUnknown colourKeyKind = iota
	colourKeyCombo
	colourKeyScalar
)

var comboKeyPattern = regexp.MustCompile(`(?i)^combo(\d+)$`)

// colourScalars are the fixed override keys, in serialization order.
var colourScalars = []struct {
	key string
	ptr func(*beatmap.ColoursSection) *beatmap.Colour
}{
	{"SliderBody", func(s *beatmap.ColoursSection) *beatmap.Colour { return &s.SliderBody }},
	{"SliderTrackOverride", func(s *beatmap.ColoursSection) *beatmap.Colour { return &s.SliderTrackOverride }},
	{"SliderBorder", func(s *beatmap.ColoursSection) *beatmap.Colour { return &s.SliderBorder }},
}

// classifyColourKey sorts a key into combo, scalar or unknown. For combo
// keys index is N; for scalars it is the position in colourScalars.
func classifyColourKey(key string) (colourKeyKind, int, error) {
	if m := comboKeyPattern.FindStringSubmatch(key); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return colourKeyUnknown, 0, syntaxErrorf("combo index out of range in %q", key)
		}
		return colourKeyCombo, n, nil
	}
	for i, sc := range colourScalars {
		if strings.EqualFold(key, sc.key) {
			return colourKeyScalar, i, nil
		}
	}
	return colourKeyUnknown, 0, nil
}

type indexedColour struct {
	index  int
	colour beatmap.Colour
}

func parseColours(cur *cursor) (beatmap.ColoursSection, error) {
	section := beatmap.DefaultColours()
	var combos []indexedColour

	err := scanKeyValues(cur, func(key, value string) error {
		kind, idx, err := classifyColourKey(key)
		if err != nil {
			return err
		}
		if kind == colourKeyUnknown {
			return nil
		}
		c, err := decodeColour(value)
		if err != nil {
			return withField(key, err)
		}
		if kind == colourKeyCombo {
			combos = append(combos, indexedColour{index: idx, colour: c})
		} else {
			*colourScalars[idx].ptr(&section) = c
		}
		return nil
	})
	if err != nil {
		return section, err
	}

	// Input order is kept for equal indices.
	slices.SortStableFunc(combos, func(a, b indexedColour) int {
		return cmp.Compare(a.index, b.index)
	})
	for _, ic := range combos {
		section.Combos = append(section.Combos, ic.colour)
	}
	return section, nil
}
