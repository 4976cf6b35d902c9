package parser

import (
	"errors"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
)

// timingPointFields is the fixed arity of a timing point record.
const timingPointFields = 8

// scanRecords consumes the current header and hands every following line
// to parse until the next header or the end of input.
func scanRecords(cur *cursor, parse func(text string) error) error {
	for {
		line, ok := cur.Advance()
		if !ok || isHeader(line.Text) {
			return nil
		}
		if err := parse(line.Text); err != nil {
			return attachLine(err, line)
		}
	}
}

func parseTimingPoints(cur *cursor) ([]beatmap.TimingPoint, error) {
	var points []beatmap.TimingPoint
	err := scanRecords(cur, func(text string) error {
		tp, err := parseTimingPoint(text)
		if err != nil {
			return err
		}
		points = append(points, tp)
		return nil
	})
	return points, err
}

func parseTimingPoint(text string) (beatmap.TimingPoint, error) {
	var tp beatmap.TimingPoint
	f := strings.Split(text, ",")
	if len(f) < timingPointFields {
		return tp, incompletef("timing point has %d fields, want %d", len(f), timingPointFields)
	}

	var err error
	if tp.Offset, err = decodeFloat(f[0]); err != nil {
		return tp, withField("offset", err)
	}
	if tp.BeatDuration, err = decodeFloat(f[1]); err != nil {
		return tp, withField("beat duration", err)
	}
	if tp.Meter, err = decodeInt(f[2]); err != nil {
		return tp, withField("meter", err)
	}
	if tp.SampleSet, err = decodeInt(f[3]); err != nil {
		return tp, withField("sample set", err)
	}
	if tp.SampleIndex, err = decodeInt(f[4]); err != nil {
		return tp, withField("sample index", err)
	}
	if tp.Volume, err = decodeInt(f[5]); err != nil {
		return tp, withField("volume", err)
	}
	if tp.Inherited, err = decodeBool(f[6]); err != nil {
		return tp, withField("inherited", err)
	}
	effects, err := decodeInt(f[7])
	if err != nil {
		return tp, withField("effects", err)
	}
	tp.Kiai = effects&beatmap.EffectKiai != 0
	tp.OmitFirstBarLine = effects&beatmap.EffectOmitFirstBarLine != 0
	return tp, nil
}

func parseHitObjects(cur *cursor) ([]beatmap.HitObject, error) {
	var objects []beatmap.HitObject
	err := scanRecords(cur, func(text string) error {
		o, err := parseHitObject(text)
		if err != nil {
			return err
		}
		objects = append(objects, o)
		return nil
	})
	return objects, err
}

func parseHitObject(text string) (beatmap.HitObject, error) {
	f := strings.Split(text, ",")
	if len(f) < 5 {
		return nil, incompletef("hit object has %d fields, want at least 5", len(f))
	}

	var (
		base    beatmap.HitObjectBase
		typeVal int
		err     error
	)
	if base.X, err = decodeInt(f[0]); err != nil {
		return nil, withField("x", err)
	}
	if base.Y, err = decodeInt(f[1]); err != nil {
		return nil, withField("y", err)
	}
	if base.Time, err = decodeInt(f[2]); err != nil {
		return nil, withField("time", err)
	}
	if typeVal, err = decodeInt(f[3]); err != nil {
		return nil, withField("type", err)
	}
	kind, newCombo, colorSkip, err := beatmap.DecodeType(typeVal)
	if err != nil {
		if errors.Is(err, beatmap.ErrInvalidType) {
			return nil, unsupportedf("%v", err)
		}
		return nil, err
	}
	base.NewCombo = newCombo
	base.ColorSkip = colorSkip
	if base.HitSound, err = decodeInt(f[4]); err != nil {
		return nil, withField("hitsound", err)
	}

	rest := f[5:]
	switch kind {
	case beatmap.KindCircle:
		if base.Extras, err = optionalExtras(rest, 0); err != nil {
			return nil, err
		}
		return beatmap.HitCircle{HitObjectBase: base}, nil
	case beatmap.KindSlider:
		return parseSlider(base, rest)
	case beatmap.KindSpinner:
		if len(rest) < 1 {
			return nil, incompletef("spinner is missing its end time")
		}
		s := beatmap.Spinner{HitObjectBase: base}
		if s.EndTime, err = decodeInt(rest[0]); err != nil {
			return nil, withField("end time", err)
		}
		if s.Extras, err = optionalExtras(rest, 1); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return parseHoldNote(base, rest)
	}
}

// parseSlider decodes "shape|x:y|..., repeat, length[, edgeSounds[, edgeSets[, extras]]]".
func parseSlider(base beatmap.HitObjectBase, rest []string) (beatmap.HitObject, error) {
	if len(rest) < 3 {
		return nil, incompletef("slider needs a curve, a repeat count and a pixel length")
	}
	s := beatmap.Slider{HitObjectBase: base}

	curve := strings.Split(rest[0], "|")
	var err error
	if s.Shape, err = decodeShape(curve[0]); err != nil {
		return nil, err
	}
	for _, tok := range curve[1:] {
		p, err := decodePoint(tok)
		if err != nil {
			return nil, withField("curve point", err)
		}
		s.ControlPoints = append(s.ControlPoints, p)
	}

	if s.Repeat, err = decodeInt(rest[1]); err != nil {
		return nil, withField("repeat", err)
	}
	if s.PixelLength, err = decodeFloat(rest[2]); err != nil {
		return nil, withField("pixel length", err)
	}
	if len(rest) > 3 {
		if s.EdgeHitSounds, err = decodeList(rest[3], "|", decodeInt); err != nil {
			return nil, withField("edge hitsounds", err)
		}
	}
	if len(rest) > 4 {
		if s.EdgeAdditions, err = decodeList(rest[4], "|", decodeEdgeSet); err != nil {
			return nil, withField("edge additions", err)
		}
	}
	if s.Extras, err = optionalExtras(rest, 5); err != nil {
		return nil, err
	}
	return s, nil
}

// parseHoldNote handles the one variant whose tail is a single
// "endTime:extras" field rather than separate columns.
func parseHoldNote(base beatmap.HitObjectBase, rest []string) (beatmap.HitObject, error) {
	if len(rest) < 1 || strings.TrimSpace(rest[0]) == "" {
		return nil, incompletef("hold note is missing its end time")
	}
	h := beatmap.HoldNote{HitObjectBase: base}
	end, extras, hasExtras := strings.Cut(rest[0], ":")

	var err error
	if h.EndTime, err = decodeInt(end); err != nil {
		return nil, withField("end time", err)
	}
	if hasExtras && strings.TrimSpace(extras) != "" {
		if h.Extras, err = decodeExtras(extras); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// optionalExtras decodes fields[i] as an extras block, or returns the zero
// value when the block is absent.
func optionalExtras(fields []string, i int) (beatmap.HitObjectExtras, error) {
	if i >= len(fields) || strings.TrimSpace(fields[i]) == "" {
		return beatmap.HitObjectExtras{}, nil
	}
	return decodeExtras(fields[i])
}

// skipEvents consumes the Events section without looking at it.
func skipEvents(cur *cursor) {
	for {
		line, ok := cur.Advance()
		if !ok || isHeader(line.Text) {
			return
		}
	}
}
