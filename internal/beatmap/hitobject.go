package beatmap

// ObjectKind identifies a hit object variant.
type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHoldNote
)

func (k ObjectKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHoldNote:
		return "hold"
	default:
		return "unknown"
	}
}

// Point is a playfield coordinate in osu!pixels.
type Point struct{ X, Y int }

// HitObjectExtras overrides the samples a single object plays.
// The zero value means "use the timing point defaults".
type HitObjectExtras struct {
	SampleSet   int
	AdditionSet int
	CustomIndex int
	Volume      int
	Filename    string
}

// HitObjectBase carries the attributes every variant shares.
type HitObjectBase struct {
	X, Y     int
	Time     int
	NewCombo bool
	// ColorSkip is the number of combo colours to skip (0-7).
	ColorSkip int
	HitSound  int
	Extras    HitObjectExtras
}

func (b HitObjectBase) Common() HitObjectBase { return b }

// HitObject is one of HitCircle, Slider, Spinner or HoldNote.
type HitObject interface {
	Kind() ObjectKind
	Common() HitObjectBase
}

type HitCircle struct{ HitObjectBase }

func (HitCircle) Kind() ObjectKind { return KindCircle }

// SliderShape is the curve type letter of a slider path.
type SliderShape uint8

const (
	ShapeLinear SliderShape = iota
	ShapeBezier
	ShapePerfect
	// ShapeCatmull is deprecated in the editor but still appears in old maps.
	ShapeCatmull
)

// Code returns the single-letter form used in the file.
func (s SliderShape) Code() string {
	switch s {
	case ShapeLinear:
		return "L"
	case ShapeBezier:
		return "B"
	case ShapePerfect:
		return "P"
	case ShapeCatmull:
		return "C"
	default:
		return "?"
	}
}

// EdgeSet is the (sample set, addition set) pair of one slider edge.
type EdgeSet struct {
	Sample   int
	Addition int
}

type Slider struct {
	HitObjectBase
	Shape         SliderShape
	ControlPoints []Point
	Repeat        int
	PixelLength   float64
	// EdgeHitSounds and EdgeAdditions have one entry per edge
	// (head, each repeat, tail) when present.
	EdgeHitSounds []int
	EdgeAdditions []EdgeSet
}

func (Slider) Kind() ObjectKind { return KindSlider }

type Spinner struct {
	HitObjectBase
	EndTime int
}

func (Spinner) Kind() ObjectKind { return KindSpinner }

// HoldNote is a mania long note.
type HoldNote struct {
	HitObjectBase
	EndTime int
}

func (HoldNote) Kind() ObjectKind { return KindHoldNote }

// EndTime returns the time an object finishes: the end time for spinners
// and hold notes, the start time otherwise.
func EndTime(o HitObject) int {
	switch v := o.(type) {
	case Spinner:
		return v.EndTime
	case HoldNote:
		return v.EndTime
	default:
		return o.Common().Time
	}
}
