package parser

import "strings"

// Line is one non-blank input line and its 0-based index in the input.
type Line struct {
	Index int
	Text  string
}

// cursor walks the non-blank lines of an input buffer. Lines are
// substrings of the buffer, nothing is copied.
type cursor struct {
	lines []Line
	pos   int
}

func newCursor(text string) *cursor {
	c := &cursor{}
	i := 0
	for raw := range strings.Lines(text) {
		raw = strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(raw) != "" {
			c.lines = append(c.lines, Line{Index: i, Text: raw})
		}
		i++
	}
	return c
}

// Current returns the line under the cursor without consuming it.
func (c *cursor) Current() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[c.pos], true
}

// Advance consumes the current line and returns the next one.
func (c *cursor) Advance() (Line, bool) {
	if c.pos < len(c.lines) {
		c.pos++
	}
	return c.Current()
}
