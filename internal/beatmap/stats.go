package beatmap

import "math"

// Stats summarises the object and timing sequences of a beatmap.
type Stats struct {
	Circles   int `json:"circles" yaml:"circles"`
	Sliders   int `json:"sliders" yaml:"sliders"`
	Spinners  int `json:"spinners" yaml:"spinners"`
	HoldNotes int `json:"hold_notes" yaml:"hold_notes"`
	Combos    int `json:"combos" yaml:"combos"`

	// FirstObject and LastObject are in ms; LastObject includes end times.
	FirstObject int `json:"first_object_ms" yaml:"first_object_ms"`
	LastObject  int `json:"last_object_ms" yaml:"last_object_ms"`

	MinBPM float64 `json:"min_bpm" yaml:"min_bpm"`
	MaxBPM float64 `json:"max_bpm" yaml:"max_bpm"`
}

// Objects returns the total number of hit objects.
func (s Stats) Objects() int {
	return s.Circles + s.Sliders + s.Spinners + s.HoldNotes
}

// Length returns the time between the first and last object in ms.
func (s Stats) Length() int {
	return s.LastObject - s.FirstObject
}

// ComputeStats walks the beatmap once. Objects are not assumed to be sorted.
func ComputeStats(b *Beatmap) Stats {
	var s Stats
	for i, o := range b.HitObjects {
		switch o.Kind() {
		case KindCircle:
			s.Circles++
		case KindSlider:
			s.Sliders++
		case KindSpinner:
			s.Spinners++
		case KindHoldNote:
			s.HoldNotes++
		}

		c := o.Common()
		if i == 0 || c.NewCombo {
			s.Combos++
		}
		if i == 0 || c.Time < s.FirstObject {
			s.FirstObject = c.Time
		}
		if end := EndTime(o); i == 0 || end > s.LastObject {
			s.LastObject = end
		}
	}

	s.MinBPM = math.Inf(1)
	for _, tp := range b.TimingPoints {
		bpm := tp.BPM()
		if bpm == 0 {
			continue
		}
		s.MinBPM = math.Min(s.MinBPM, bpm)
		s.MaxBPM = math.Max(s.MaxBPM, bpm)
	}
	if math.IsInf(s.MinBPM, 1) {
		s.MinBPM = 0
	}
	return s
}
