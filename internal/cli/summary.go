package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/parser"

	"gopkg.in/yaml.v3"
)

// summary is what `parse` prints about one beatmap.
type summary struct {
	Path          string            `json:"path" yaml:"path"`
	Hash          string            `json:"hash" yaml:"hash"`
	FormatVersion int               `json:"format_version" yaml:"format_version"`
	Mode          string            `json:"mode" yaml:"mode"`
	Artist        string            `json:"artist" yaml:"artist"`
	Title         string            `json:"title" yaml:"title"`
	Version       string            `json:"version" yaml:"version"`
	Creator       string            `json:"creator" yaml:"creator"`
	Tags          []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Difficulty    difficultySummary `json:"difficulty" yaml:"difficulty"`
	TimingPoints  int               `json:"timing_points" yaml:"timing_points"`
	ComboColours  int               `json:"combo_colours" yaml:"combo_colours"`
	Stats         beatmap.Stats     `json:"stats" yaml:"stats"`
}

type difficultySummary struct {
	HP               float64 `json:"hp" yaml:"hp"`
	CS               float64 `json:"cs" yaml:"cs"`
	OD               float64 `json:"od" yaml:"od"`
	AR               float64 `json:"ar" yaml:"ar"`
	SliderMultiplier float64 `json:"slider_multiplier" yaml:"slider_multiplier"`
	SliderTickRate   float64 `json:"slider_tick_rate" yaml:"slider_tick_rate"`
}

func newSummary(path, hash string, b *beatmap.Beatmap) summary {
	d := b.Difficulty
	return summary{
		Path:          path,
		Hash:          hash,
		FormatVersion: b.Version,
		Mode:          b.General.Mode.String(),
		Artist:        b.Metadata.Artist,
		Title:         b.Metadata.Title,
		Version:       b.Metadata.Version,
		Creator:       b.Metadata.Creator,
		Tags:          b.Metadata.Tags,
		Difficulty: difficultySummary{
			HP:               d.HPDrainRate,
			CS:               d.CircleSize,
			OD:               d.OverallDifficulty,
			AR:               d.ApproachRate,
			SliderMultiplier: d.SliderMultiplier,
			SliderTickRate:   d.SliderTickRate,
		},
		TimingPoints: len(b.TimingPoints),
		ComboColours: len(b.Colours.Combos),
		Stats:        beatmap.ComputeStats(b),
	}
}

func writeSummary(w io.Writer, s summary, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case "text", "":
		return writeSummaryText(w, s)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func writeSummaryText(w io.Writer, s summary) error {
	st := s.Stats
	bpm := formatBPM(st.MinBPM, st.MaxBPM)
	_, err := fmt.Fprintf(w, `%s - %s [%s]
  mapped by %s, %s mode, format v%d
  HP %g  CS %g  OD %g  AR %g  SV %g  tick %g
  %d objects (%d circles, %d sliders, %d spinners, %d hold notes), %d combos
  length %s, %s BPM, %d timing points
`,
		s.Artist, s.Title, s.Version,
		s.Creator, s.Mode, s.FormatVersion,
		s.Difficulty.HP, s.Difficulty.CS, s.Difficulty.OD, s.Difficulty.AR, s.Difficulty.SliderMultiplier, s.Difficulty.SliderTickRate,
		st.Objects(), st.Circles, st.Sliders, st.Spinners, st.HoldNotes, st.Combos,
		formatDuration(st.Length()), bpm, s.TimingPoints,
	)
	return err
}

func formatBPM(lo, hi float64) string {
	switch {
	case hi == 0:
		return "?"
	case lo == hi:
		return fmt.Sprintf("%.5g", lo)
	default:
		return fmt.Sprintf("%.5g-%.5g", lo, hi)
	}
}

func formatDuration(ms int) string {
	sec := ms / 1000
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// describeFailure renders a parse failure as "path:line: reason" when the
// line is known.
func describeFailure(path string, err error) string {
	var pe *parser.Error
	if errors.As(err, &pe) {
		if pe.HasLine {
			return fmt.Sprintf("%s:%d: %s: %s", path, pe.Line+1, pe.Kind, pe.Reason)
		}
		return fmt.Sprintf("%s: %s: %s", path, pe.Kind, pe.Reason)
	}
	return fmt.Sprintf("%s: %v", path, err)
}
