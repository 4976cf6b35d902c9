package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
)

// Serialize renders b as canonical .osu text. Parsing the result yields a
// beatmap equal to b. Unknown keys, key casing and Events content are not
// part of the model and are not reproduced.
func Serialize(b *beatmap.Beatmap) string {
	var sb strings.Builder
	sb.WriteString("osu file format v")
	sb.WriteString(strconv.Itoa(b.Version))
	sb.WriteString("\n\n")

	writeFields(&sb, "General", generalFields, &b.General)
	writeFields(&sb, "Editor", editorFields, &b.Editor)
	writeFields(&sb, "Metadata", metadataFields, &b.Metadata)
	writeFields(&sb, "Difficulty", difficultyFields, &b.Difficulty)

	sb.WriteString("[TimingPoints]\n")
	for _, tp := range b.TimingPoints {
		sb.WriteString(formatTimingPoint(tp))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	writeColours(&sb, b.Colours)

	sb.WriteString("[HitObjects]\n")
	for _, o := range b.HitObjects {
		sb.WriteString(formatHitObject(o))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write serializes b to w.
func Write(w io.Writer, b *beatmap.Beatmap) error {
	_, err := io.WriteString(w, Serialize(b))
	return err
}

func writeFields[S any](sb *strings.Builder, name string, table *fieldTable[S], section *S) {
	sb.WriteString("[" + name + "]\n")
	for _, f := range table.fields {
		v, ok := f.encode(section)
		if !ok {
			continue
		}
		sb.WriteString(f.key)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
}

func writeColours(sb *strings.Builder, cs beatmap.ColoursSection) {
	sb.WriteString("[Colours]\n")
	for i, c := range cs.Combos {
		sb.WriteString("Combo" + strconv.Itoa(i+1) + " : " + formatColour(c) + "\n")
	}
	for _, sc := range colourScalars {
		sb.WriteString(sc.key + " : " + formatColour(*sc.ptr(&cs)) + "\n")
	}
	sb.WriteByte('\n')
}

func formatTimingPoint(tp beatmap.TimingPoint) string {
	return strings.Join([]string{
		formatFloat(tp.Offset),
		formatFloat(tp.BeatDuration),
		strconv.Itoa(tp.Meter),
		strconv.Itoa(tp.SampleSet),
		strconv.Itoa(tp.SampleIndex),
		strconv.Itoa(tp.Volume),
		formatBool(tp.Inherited),
		strconv.Itoa(tp.Effects()),
	}, ",")
}

func formatHitObject(o beatmap.HitObject) string {
	c := o.Common()
	head := []string{
		strconv.Itoa(c.X),
		strconv.Itoa(c.Y),
		strconv.Itoa(c.Time),
		strconv.Itoa(beatmap.TypeByte(o)),
		strconv.Itoa(c.HitSound),
	}

	var tail []string
	switch v := o.(type) {
	case beatmap.Slider:
		curve := append([]string{v.Shape.Code()}, formatPoints(v.ControlPoints)...)
		tail = []string{
			strings.Join(curve, "|"),
			strconv.Itoa(v.Repeat),
			formatFloat(v.PixelLength),
			formatList(v.EdgeHitSounds, "|", formatInt),
			formatList(v.EdgeAdditions, "|", func(e beatmap.EdgeSet) string {
				return strconv.Itoa(e.Sample) + ":" + strconv.Itoa(e.Addition)
			}),
			formatExtras(c.Extras),
		}
	case beatmap.Spinner:
		tail = []string{strconv.Itoa(v.EndTime), formatExtras(c.Extras)}
	case beatmap.HoldNote:
		tail = []string{strconv.Itoa(v.EndTime) + ":" + formatExtras(c.Extras)}
	default:
		tail = []string{formatExtras(c.Extras)}
	}
	return strings.Join(append(head, tail...), ",")
}

func formatPoints(ps []beatmap.Point) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = strconv.Itoa(p.X) + ":" + strconv.Itoa(p.Y)
	}
	return out
}
