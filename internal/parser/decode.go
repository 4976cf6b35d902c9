package parser

import (
	"strconv"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
)

// Field decoders. Each one takes a raw field, trims it and returns either
// the value or an *Error without line context.

func decodeString(s string) (string, error) {
	return strings.TrimSpace(s), nil
}

func decodeInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, syntaxErrorf("unable to parse integer %q", s)
	}
	return n, nil
}

func decodeFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, syntaxErrorf("unable to parse number %q", s)
	}
	return f, nil
}

// decodeBool accepts any integer; non-zero is true.
func decodeBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return false, syntaxErrorf("unable to parse boolean %q", s)
	}
	return n != 0, nil
}

func decodeMode(s string) (beatmap.GameMode, error) {
	n, err := decodeInt(s)
	if err != nil {
		return 0, err
	}
	m := beatmap.GameMode(n)
	if !m.Valid() {
		return 0, unsupportedf("unknown game mode %d", n)
	}
	return m, nil
}

// decodeColour reads "r,g,b". Components past the third are ignored.
func decodeColour(s string) (beatmap.Colour, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return beatmap.Colour{}, incompletef("colour %q needs three components", strings.TrimSpace(s))
	}
	var rgb [3]int
	for i := range rgb {
		n, err := decodeInt(parts[i])
		if err != nil {
			return beatmap.Colour{}, err
		}
		rgb[i] = n
	}
	return beatmap.Colour{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// decodePair reads "a:b".
func decodePair(s string) (int, int, error) {
	left, right, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, incompletef("expected a pair like 1:2, got %q", strings.TrimSpace(s))
	}
	a, err := decodeInt(left)
	if err != nil {
		return 0, 0, err
	}
	b, err := decodeInt(right)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func decodePoint(s string) (beatmap.Point, error) {
	x, y, err := decodePair(s)
	if err != nil {
		return beatmap.Point{}, err
	}
	return beatmap.Point{X: x, Y: y}, nil
}

func decodeEdgeSet(s string) (beatmap.EdgeSet, error) {
	sample, addition, err := decodePair(s)
	if err != nil {
		return beatmap.EdgeSet{}, err
	}
	return beatmap.EdgeSet{Sample: sample, Addition: addition}, nil
}

func decodeShape(s string) (beatmap.SliderShape, error) {
	switch strings.TrimSpace(s) {
	case "L":
		return beatmap.ShapeLinear, nil
	case "B":
		return beatmap.ShapeBezier, nil
	case "P":
		return beatmap.ShapePerfect, nil
	case "C":
		return beatmap.ShapeCatmull, nil
	}
	return 0, unsupportedf("unknown slider shape %q", strings.TrimSpace(s))
}

// decodeExtras reads "sampleSet:additionSet:index:volume:filename".
// Older formats stop early; missing trailing fields keep their zero value.
func decodeExtras(s string) (beatmap.HitObjectExtras, error) {
	var ex beatmap.HitObjectExtras
	parts := strings.SplitN(s, ":", 5)
	ints := []*int{&ex.SampleSet, &ex.AdditionSet, &ex.CustomIndex, &ex.Volume}
	for i, dst := range ints {
		if i >= len(parts) {
			return ex, nil
		}
		if i > 0 && i == len(parts)-1 && strings.TrimSpace(parts[i]) == "" {
			return ex, nil
		}
		n, err := decodeInt(parts[i])
		if err != nil {
			return ex, withField("extras", err)
		}
		*dst = n
	}
	if len(parts) == 5 {
		ex.Filename = strings.TrimSpace(parts[4])
	}
	return ex, nil
}

// decodeList splits s on sep and decodes every item, empty ones included.
// A blank input yields a nil slice.
func decodeList[T any](s, sep string, decode func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []T
	for _, item := range strings.Split(s, sep) {
		v, err := decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeTags splits on runs of whitespace.
func decodeTags(s string) ([]string, error) {
	tags := strings.Fields(s)
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

func formatTags(tags []string) string { return strings.Join(tags, " ") }

func formatInt(n int) string { return strconv.Itoa(n) }

// formatFloat writes the shortest decimal that parses back to f exactly.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatMode(m beatmap.GameMode) string { return strconv.Itoa(int(m)) }

func formatColour(c beatmap.Colour) string {
	return strconv.Itoa(c.R) + "," + strconv.Itoa(c.G) + "," + strconv.Itoa(c.B)
}

func formatExtras(ex beatmap.HitObjectExtras) string {
	return strings.Join([]string{
		strconv.Itoa(ex.SampleSet),
		strconv.Itoa(ex.AdditionSet),
		strconv.Itoa(ex.CustomIndex),
		strconv.Itoa(ex.Volume),
		ex.Filename,
	}, ":")
}

func formatList[T any](items []T, sep string, format func(T) string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = format(it)
	}
	return strings.Join(parts, sep)
}
