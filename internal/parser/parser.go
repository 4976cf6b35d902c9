// Package parser reads and writes the .osu beatmap text format.
//
// Parse is a pure function of its input: it keeps no state between calls
// and can be run concurrently on different inputs.
package parser

import (
	"regexp"
	"strconv"

	"github.com/eltrufas/osuparse/internal/beatmap"
)

var (
	versionPattern = regexp.MustCompile(`osu file format v(\d+)\s*$`)
	headerPattern  = regexp.MustCompile(`^\[([^\[\]]*)\]\s*$`)
)

func isHeader(line string) bool {
	return headerPattern.MatchString(line)
}

type state int

const (
	stateExpectVersion state = iota
	stateSections
	stateDone
)

type decoder struct {
	cur   *cursor
	state state
	out   *beatmap.Beatmap
}

// Parse reads a whole .osu file. On failure no partial beatmap is returned
// and the error is an *Error.
func Parse(text string) (*beatmap.Beatmap, error) {
	d := &decoder{cur: newCursor(text)}
	for d.state != stateDone {
		var err error
		switch d.state {
		case stateExpectVersion:
			err = d.version()
		case stateSections:
			err = d.section()
		}
		if err != nil {
			return nil, err
		}
	}
	return d.out, nil
}

// ParseBytes is Parse for a byte buffer.
func ParseBytes(data []byte) (*beatmap.Beatmap, error) {
	return Parse(string(data))
}

func (d *decoder) version() error {
	line, ok := d.cur.Current()
	if !ok {
		return incompletef("input is empty, expected an osu file format header")
	}
	m := versionPattern.FindStringSubmatch(line.Text)
	if m == nil {
		return attachLine(syntaxErrorf("unable to parse version string"), line)
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return attachLine(syntaxErrorf("version %s out of range", m[1]), line)
	}
	d.out = beatmap.New(v)
	d.cur.Advance()
	d.state = stateSections
	return nil
}

func (d *decoder) section() error {
	line, ok := d.cur.Current()
	if !ok {
		d.state = stateDone
		return nil
	}
	m := headerPattern.FindStringSubmatch(line.Text)
	if m == nil {
		return attachLine(syntaxErrorf("malformed section header"), line)
	}

	var err error
	b := d.out
	switch name := m[1]; name {
	case "General":
		b.General, err = parseFields(d.cur, generalFields, beatmap.DefaultGeneral())
	case "Editor":
		b.Editor, err = parseFields(d.cur, editorFields, beatmap.DefaultEditor())
	case "Metadata":
		b.Metadata, err = parseFields(d.cur, metadataFields, beatmap.DefaultMetadata())
	case "Difficulty":
		b.Difficulty, err = parseFields(d.cur, difficultyFields, beatmap.DefaultDifficulty())
	case "TimingPoints":
		b.TimingPoints, err = parseTimingPoints(d.cur)
	case "HitObjects":
		b.HitObjects, err = parseHitObjects(d.cur)
	case "Colours":
		b.Colours, err = parseColours(d.cur)
	case "Events":
		skipEvents(d.cur)
	default:
		return attachLine(syntaxErrorf("unknown section header [%s]", name), line)
	}
	return err
}
