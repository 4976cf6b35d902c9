package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBeatmap() *beatmap.Beatmap {
	b := beatmap.New(14)
	b.General.AudioFilename = "audio.mp3"
	b.General.PreviewTime = 1200
	b.General.Countdown = true
	b.General.SampleSet = "Drum"
	b.General.Mode = beatmap.ModeMania
	b.General.EpilepsyWarning = true
	b.Editor.Bookmarks = []int{100, 2000}
	b.Editor.TimelineZoom = 2.5
	b.Metadata.Title = "Title: with colon"
	b.Metadata.Creator = "mapper"
	b.Metadata.Tags = []string{"a", "b"}
	b.Metadata.BeatmapID = 7
	b.Difficulty.OverallDifficulty = 8.3
	b.TimingPoints = []beatmap.TimingPoint{
		{Offset: 0, BeatDuration: 500, Meter: 4, SampleSet: 1, Volume: 100, Inherited: true},
		{Offset: 1250.5, BeatDuration: -66.6666666666667, Meter: 4, SampleSet: 2, SampleIndex: 1, Volume: 70, Kiai: true, OmitFirstBarLine: true},
	}
	b.Colours.Combos = []beatmap.Colour{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}
	b.Colours.SliderBody = beatmap.Colour{R: 10, G: 20, B: 30}
	b.HitObjects = []beatmap.HitObject{
		beatmap.HitCircle{HitObjectBase: beatmap.HitObjectBase{X: 1, Y: 2, Time: 3, NewCombo: true, ColorSkip: 2, HitSound: 4}},
		beatmap.Slider{
			HitObjectBase: beatmap.HitObjectBase{X: 5, Y: 6, Time: 7, Extras: beatmap.HitObjectExtras{SampleSet: 1, Volume: 40, Filename: "s.wav"}},
			Shape:         beatmap.ShapeBezier,
			ControlPoints: []beatmap.Point{{X: 8, Y: 9}, {X: 10, Y: 11}},
			Repeat:        1,
			PixelLength:   140.5,
			EdgeHitSounds: []int{2, 8},
			EdgeAdditions: []beatmap.EdgeSet{{Sample: 1, Addition: 2}, {}},
		},
		beatmap.Spinner{HitObjectBase: beatmap.HitObjectBase{X: 256, Y: 192, Time: 900, NewCombo: true}, EndTime: 1900},
		beatmap.HoldNote{HitObjectBase: beatmap.HitObjectBase{X: 64, Y: 192, Time: 2000, Extras: beatmap.HitObjectExtras{CustomIndex: 3}}, EndTime: 2500},
	}
	return b
}

func TestSerializeRoundTrip(t *testing.T) {
	want := fullBeatmap()
	got, err := Parse(Serialize(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSerializeRoundTripDefaults(t *testing.T) {
	want := beatmap.New(3)
	got, err := Parse(Serialize(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSerializeIsStable(t *testing.T) {
	first := Serialize(mustParse(t, sampleMap))
	second := Serialize(mustParse(t, first))
	assert.Equal(t, first, second)
}

func TestSerializeLayout(t *testing.T) {
	out := Serialize(fullBeatmap())

	assert.True(t, strings.HasPrefix(out, "osu file format v14\n\n[General]\n"))
	assert.Contains(t, out, "Mode: 3\n")
	assert.Contains(t, out, "Bookmarks: 100,2000\n")
	assert.Contains(t, out, "Tags: a b\n")
	assert.Contains(t, out, "Combo2 : 4,5,6\n")
	assert.Contains(t, out, "SliderBody : 10,20,30\n")
	assert.Contains(t, out, "1250.5,-66.6666666666667,4,2,1,70,0,9\n")
	assert.Contains(t, out, "1,2,3,37,4,0:0:0:0:\n")
	assert.Contains(t, out, "5,6,7,2,0,B|8:9|10:11,1,140.5,2|8,1:2|0:0,1:0:0:40:s.wav\n")
	assert.Contains(t, out, "256,192,900,12,0,1900,0:0:0:0:\n")
	assert.Contains(t, out, "64,192,2000,128,0,2500:0:0:3:0:\n")

	sections := []string{"[General]", "[Editor]", "[Metadata]", "[Difficulty]", "[TimingPoints]", "[Colours]", "[HitObjects]"}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.Greater(t, i, last, s)
		last = i
	}
}

func TestSerializeOmitsEmptyBookmarks(t *testing.T) {
	out := Serialize(beatmap.New(14))
	assert.NotContains(t, out, "Bookmarks")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	b := fullBeatmap()
	require.NoError(t, Write(&buf, b))
	assert.Equal(t, Serialize(b), buf.String())
}
