package store

import (
	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/parser"
)

// VectorDimensions is the length of a difficulty vector.
const VectorDimensions = 8

// Record is one catalogued beatmap: identity, searchable metadata,
// derived statistics and the canonical text it can be rebuilt from.
type Record struct {
	Hash         string
	Path         string
	FormatVer    int
	Mode         beatmap.GameMode
	Title        string
	Artist       string
	Creator      string
	Version      string
	Source       string
	Tags         []string
	BeatmapID    int
	BeatmapSetID int
	Difficulty   beatmap.DifficultySection
	Stats        beatmap.Stats
	Canonical    string
	Vector       []float32
}

// NewRecord builds a Record from a parsed beatmap.
func NewRecord(path, hash string, b *beatmap.Beatmap) Record {
	m := b.Metadata
	return Record{
		Hash:         hash,
		Path:         path,
		FormatVer:    b.Version,
		Mode:         b.General.Mode,
		Title:        m.Title,
		Artist:       m.Artist,
		Creator:      m.Creator,
		Version:      m.Version,
		Source:       m.Source,
		Tags:         m.Tags,
		BeatmapID:    m.BeatmapID,
		BeatmapSetID: m.BeatmapSetID,
		Difficulty:   b.Difficulty,
		Stats:        beatmap.ComputeStats(b),
		Canonical:    parser.Serialize(b),
		Vector:       DifficultyVector(b),
	}
}

// DifficultyVector places a beatmap in a space where nearby points play
// alike. Components are scaled to roughly [0,1]:
//
//	HP, CS, OD, AR, slider multiplier, slider tick rate,
//	objects per second, share of sliders among objects.
func DifficultyVector(b *beatmap.Beatmap) []float32 {
	d := b.Difficulty
	s := beatmap.ComputeStats(b)

	var density, sliderRatio float64
	if n := s.Objects(); n > 0 {
		if length := s.Length(); length > 0 {
			density = float64(n) / (float64(length) / 1000)
		}
		sliderRatio = float64(s.Sliders) / float64(n)
	}

	return []float32{
		float32(d.HPDrainRate / 10),
		float32(d.CircleSize / 10),
		float32(d.OverallDifficulty / 10),
		float32(d.ApproachRate / 10),
		float32(d.SliderMultiplier / 3.6),
		float32(d.SliderTickRate / 4),
		float32(min(density/10, 1)),
		float32(sliderRatio),
	}
}
