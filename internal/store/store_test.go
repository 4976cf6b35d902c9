package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBeatmap() *beatmap.Beatmap {
	b := beatmap.New(14)
	b.Metadata.Title = "Song"
	b.Metadata.Artist = "Artist"
	b.Metadata.Creator = "mapper"
	b.Metadata.Version = "Hard"
	b.Metadata.Tags = []string{"anime", "ed"}
	b.Difficulty = beatmap.DifficultySection{
		HPDrainRate: 5, CircleSize: 4, OverallDifficulty: 8, ApproachRate: 9,
		SliderMultiplier: 1.8, SliderTickRate: 2,
	}
	b.TimingPoints = []beatmap.TimingPoint{{BeatDuration: 500, Meter: 4, Inherited: true}}
	b.HitObjects = []beatmap.HitObject{
		beatmap.HitCircle{HitObjectBase: beatmap.HitObjectBase{Time: 0, NewCombo: true}},
		beatmap.Slider{HitObjectBase: beatmap.HitObjectBase{Time: 500}, Repeat: 1, PixelLength: 100},
		beatmap.HitCircle{HitObjectBase: beatmap.HitObjectBase{Time: 1000}},
		beatmap.Spinner{HitObjectBase: beatmap.HitObjectBase{Time: 1500}, EndTime: 2000},
	}
	return b
}

func TestDifficultyVector(t *testing.T) {
	v := DifficultyVector(sampleBeatmap())
	require.Len(t, v, VectorDimensions)

	want := []float32{0.5, 0.4, 0.8, 0.9, 0.5, 0.5, 0.2, 0.25}
	for i := range want {
		assert.InDelta(t, want[i], v[i], 1e-6, "component %d", i)
	}
}

func TestDifficultyVectorEmptyMap(t *testing.T) {
	v := DifficultyVector(beatmap.New(14))
	require.Len(t, v, VectorDimensions)
	assert.Zero(t, v[6])
	assert.Zero(t, v[7])
}

func TestNewRecord(t *testing.T) {
	b := sampleBeatmap()
	r := NewRecord("maps/song.osu", "abc123", b)

	assert.Equal(t, "abc123", r.Hash)
	assert.Equal(t, "maps/song.osu", r.Path)
	assert.Equal(t, 14, r.FormatVer)
	assert.Equal(t, "Song", r.Title)
	assert.Equal(t, []string{"anime", "ed"}, r.Tags)
	assert.Equal(t, 4, r.Stats.Objects())
	assert.Equal(t, 2000, r.Stats.Length())
	assert.Equal(t, DifficultyVector(b), r.Vector)

	back, err := parser.Parse(r.Canonical)
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTSV(&buf, []Entry{{
		Hash: "h1", Mode: "osu", Artist: "A\tB", Title: "T", Version: "Hard",
		Creator: "c", Objects: 3, LengthMs: 1200, Tags: []string{"x", "y"}, Path: "p.osu",
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "hash\tmode"))
	assert.Equal(t, "h1\tosu\tA\\tB\tT\tHard\tc\t3\t1200\tx y\tp.osu", lines[1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, []Entry{{Hash: "h", Title: "<Title>"}}))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "<Title>", decoded[0]["title"])
	assert.Contains(t, buf.String(), "<Title>")
}

func TestModeName(t *testing.T) {
	assert.Equal(t, "mania", modeName(3))
	assert.Equal(t, "mode(9)", modeName(9))
}

func TestUpsertOverwritesEveryColumn(t *testing.T) {
	assert.Contains(t, upsertBeatmap, "INSERT INTO beatmaps (hash, path, format_version,")
	assert.Contains(t, upsertBeatmap, "$21)")
	assert.NotContains(t, upsertBeatmap, "$22")
	assert.NotContains(t, upsertBeatmap, "hash = EXCLUDED.hash")
	for _, col := range beatmapColumns[1:] {
		assert.Contains(t, upsertBeatmap, col+" = EXCLUDED."+col, col)
	}
	assert.Contains(t, upsertBeatmap, "indexed_at = now()")
}

func TestBuildUpsert(t *testing.T) {
	got := buildUpsert("t", "id", []string{"id", "name"})
	assert.Equal(t, "INSERT INTO t (id, name) VALUES ($1, $2)\nON CONFLICT (id) DO UPDATE SET\n\tname = EXCLUDED.name,\n\tindexed_at = now()", got)
}
