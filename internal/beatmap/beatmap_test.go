package beatmap

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeType(t *testing.T) {
	cases := []struct {
		in        int
		kind      ObjectKind
		newCombo  bool
		colorSkip int
	}{
		{1, KindCircle, false, 0},
		{5, KindCircle, true, 0},
		{2, KindSlider, false, 0},
		{6, KindSlider, true, 0},
		{8, KindSpinner, false, 0},
		{12, KindSpinner, true, 0},
		{128, KindHoldNote, false, 0},
		{54, KindSlider, true, 3},
		{1 | 4 | 0x70, KindCircle, true, 7},
	}
	for _, c := range cases {
		kind, nc, skip, err := DecodeType(c.in)
		require.NoError(t, err, "type %d", c.in)
		assert.Equal(t, c.kind, kind, "type %d", c.in)
		assert.Equal(t, c.newCombo, nc, "type %d", c.in)
		assert.Equal(t, c.colorSkip, skip, "type %d", c.in)
	}
}

func TestDecodeTypeRejectsAmbiguousBytes(t *testing.T) {
	for _, b := range []int{0, 4, 3, 9, 129, 0x70} {
		_, _, _, err := DecodeType(b)
		assert.True(t, errors.Is(err, ErrInvalidType), "type %d", b)
	}
}

func TestEncodeTypeInvertsDecode(t *testing.T) {
	for _, kind := range []ObjectKind{KindCircle, KindSlider, KindSpinner, KindHoldNote} {
		for skip := 0; skip <= 7; skip++ {
			for _, nc := range []bool{false, true} {
				b := EncodeType(kind, nc, skip)
				k, gotNC, gotSkip, err := DecodeType(b)
				require.NoError(t, err)
				assert.Equal(t, kind, k)
				assert.Equal(t, nc, gotNC)
				assert.Equal(t, skip, gotSkip)
			}
		}
	}
	assert.Equal(t, TypeSlider|7<<4, EncodeType(KindSlider, false, 12))
}

func TestColourCompareSorts(t *testing.T) {
	cs := []Colour{{9, 8, 7}, {1, 2, 3}, {1, 2, 1}, {1, 0, 9}}
	slices.SortFunc(cs, Colour.Compare)
	assert.Equal(t, []Colour{{1, 0, 9}, {1, 2, 1}, {1, 2, 3}, {9, 8, 7}}, cs)
}

func TestTimingPointHelpers(t *testing.T) {
	red := TimingPoint{BeatDuration: 500}
	green := TimingPoint{BeatDuration: -50, Kiai: true, OmitFirstBarLine: true}

	assert.Equal(t, 120.0, red.BPM())
	assert.Equal(t, 0.0, green.BPM())
	assert.Equal(t, 1.0, red.SliderVelocity())
	assert.Equal(t, 2.0, green.SliderVelocity())
	assert.Equal(t, 9, green.Effects())
	assert.Equal(t, 0, red.Effects())
}

func TestNewUsesDefaults(t *testing.T) {
	b := New(14)
	assert.Equal(t, 14, b.Version)
	assert.Equal(t, 1.4, b.Difficulty.SliderMultiplier)
	assert.Equal(t, 1.0, b.Difficulty.SliderTickRate)
	assert.Equal(t, 5.0, b.Difficulty.ApproachRate)
	assert.Equal(t, 4, b.Editor.BeatDivisor)
	assert.Equal(t, ModeOsu, b.General.Mode)
	assert.Nil(t, b.HitObjects)
}

func TestComputeStats(t *testing.T) {
	b := New(14)
	b.TimingPoints = []TimingPoint{
		{Offset: 0, BeatDuration: 500},
		{Offset: 1000, BeatDuration: -100},
		{Offset: 2000, BeatDuration: 250},
	}
	b.HitObjects = []HitObject{
		HitCircle{HitObjectBase{Time: 100, NewCombo: true}},
		Slider{HitObjectBase: HitObjectBase{Time: 300}},
		Spinner{HitObjectBase: HitObjectBase{Time: 1000, NewCombo: true}, EndTime: 4000},
		HoldNote{HitObjectBase: HitObjectBase{Time: 2000}, EndTime: 2500},
	}

	s := ComputeStats(b)
	assert.Equal(t, 1, s.Circles)
	assert.Equal(t, 1, s.Sliders)
	assert.Equal(t, 1, s.Spinners)
	assert.Equal(t, 1, s.HoldNotes)
	assert.Equal(t, 4, s.Objects())
	assert.Equal(t, 2, s.Combos)
	assert.Equal(t, 100, s.FirstObject)
	assert.Equal(t, 4000, s.LastObject)
	assert.Equal(t, 3900, s.Length())
	assert.Equal(t, 120.0, s.MinBPM)
	assert.Equal(t, 240.0, s.MaxBPM)
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(New(14))
	assert.Equal(t, Stats{}, s)
}
