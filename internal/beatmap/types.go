package beatmap

// Beatmap is the parsed form of one .osu chart file.
type Beatmap struct {
	// Version is the number from the "osu file format vN" header.
	Version int

	General    GeneralSection
	Editor     EditorSection
	Metadata   MetadataSection
	Difficulty DifficultySection

	// TimingPoints and HitObjects keep input order.
	TimingPoints []TimingPoint
	HitObjects   []HitObject

	Colours ColoursSection
}

// New returns a beatmap with every section at its default.
func New(version int) *Beatmap {
	return &Beatmap{
		Version:    version,
		General:    DefaultGeneral(),
		Editor:     DefaultEditor(),
		Metadata:   DefaultMetadata(),
		Difficulty: DefaultDifficulty(),
		Colours:    DefaultColours(),
	}
}

// GameMode is the ruleset a beatmap is made for.
type GameMode int

const (
	ModeOsu GameMode = iota
	ModeTaiko
	ModeCatchTheBeat
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeOsu:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatchTheBeat:
		return "catch"
	case ModeMania:
		return "mania"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the four known modes.
func (m GameMode) Valid() bool {
	return m >= ModeOsu && m <= ModeMania
}

// GeneralSection holds the [General] properties.
type GeneralSection struct {
	AudioFilename            string
	AudioLeadIn              int
	PreviewTime              int
	Countdown                bool
	CountdownOffset          int
	SampleSet                string
	SkinPreference           string
	StackLeniency            float64
	Mode                     GameMode
	LetterboxInBreaks        bool
	WidescreenStoryboard     bool
	StoryFireInFront         bool
	SpecialStyle             bool
	EpilepsyWarning          bool
	UseSkinSprites           bool
	SamplesMatchPlaybackRate bool
}

func DefaultGeneral() GeneralSection {
	return GeneralSection{Mode: ModeOsu}
}

// EditorSection holds editor state saved with the map.
type EditorSection struct {
	Bookmarks       []int
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64
}

func DefaultEditor() EditorSection {
	return EditorSection{
		DistanceSpacing: 1.22,
		BeatDivisor:     4,
		GridSize:        4,
		TimelineZoom:    1.0,
	}
}

// MetadataSection identifies the song and the difficulty.
type MetadataSection struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	// Version is the difficulty name, not the file format version.
	Version      string
	Source       string
	Tags         []string
	BeatmapID    int
	BeatmapSetID int
}

func DefaultMetadata() MetadataSection {
	return MetadataSection{}
}

// DifficultySection holds the difficulty modifiers.
type DifficultySection struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

// DefaultDifficulty matches the editor defaults for a new difficulty.
func DefaultDifficulty() DifficultySection {
	return DifficultySection{
		HPDrainRate:       5,
		CircleSize:        5,
		OverallDifficulty: 5,
		ApproachRate:      5,
		SliderMultiplier:  1.4,
		SliderTickRate:    1,
	}
}

// TimingPoint changes tempo or sample defaults from Offset onward.
type TimingPoint struct {
	// Offset is in milliseconds from the start of the audio track.
	Offset float64
	// BeatDuration is ms per beat when positive, or a negative
	// percentage of the last positive value for inherited points.
	BeatDuration float64
	Meter        int
	SampleSet    int
	SampleIndex  int
	Volume       int
	Inherited    bool
	Kiai         bool
	// OmitFirstBarLine is bit 3 of the effects field (taiko/mania).
	OmitFirstBarLine bool
}

// BPM returns the tempo of a point with an absolute beat duration, or 0.
func (tp TimingPoint) BPM() float64 {
	if tp.BeatDuration <= 0 {
		return 0
	}
	return 60000 / tp.BeatDuration
}

// SliderVelocity returns the slider velocity multiplier a point applies.
func (tp TimingPoint) SliderVelocity() float64 {
	if tp.BeatDuration >= 0 {
		return 1
	}
	return 100 / -tp.BeatDuration
}

// Effects packs Kiai and OmitFirstBarLine into the on-disk bitfield.
func (tp TimingPoint) Effects() int {
	e := 0
	if tp.Kiai {
		e |= EffectKiai
	}
	if tp.OmitFirstBarLine {
		e |= EffectOmitFirstBarLine
	}
	return e
}

const (
	EffectKiai             = 1 << 0
	EffectOmitFirstBarLine = 1 << 3
)
