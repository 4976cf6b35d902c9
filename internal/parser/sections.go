package parser

import "github.com/eltrufas/osuparse/internal/beatmap"

type (
	general    = beatmap.GeneralSection
	editor     = beatmap.EditorSection
	metadata   = beatmap.MetadataSection
	difficulty = beatmap.DifficultySection
)

var generalFields = newFieldTable(
	stringField("AudioFilename", func(s *general) *string { return &s.AudioFilename }),
	intField("AudioLeadIn", func(s *general) *int { return &s.AudioLeadIn }),
	intField("PreviewTime", func(s *general) *int { return &s.PreviewTime }),
	boolField("Countdown", func(s *general) *bool { return &s.Countdown }),
	intField("CountdownOffset", func(s *general) *int { return &s.CountdownOffset }),
	stringField("SampleSet", func(s *general) *string { return &s.SampleSet }),
	stringField("SkinPreference", func(s *general) *string { return &s.SkinPreference }),
	floatField("StackLeniency", func(s *general) *float64 { return &s.StackLeniency }),
	scalarField("Mode", decodeMode, formatMode, func(s *general) *beatmap.GameMode { return &s.Mode }),
	boolField("LetterboxInBreaks", func(s *general) *bool { return &s.LetterboxInBreaks }),
	boolField("WidescreenStoryboard", func(s *general) *bool { return &s.WidescreenStoryboard }),
	boolField("StoryFireInFront", func(s *general) *bool { return &s.StoryFireInFront }),
	boolField("SpecialStyle", func(s *general) *bool { return &s.SpecialStyle }),
	boolField("EpilepsyWarning", func(s *general) *bool { return &s.EpilepsyWarning }),
	boolField("UseSkinSprites", func(s *general) *bool { return &s.UseSkinSprites }),
	boolField("SamplesMatchPlaybackRate", func(s *general) *bool { return &s.SamplesMatchPlaybackRate }),
)

var editorFields = newFieldTable(
	listField("Bookmarks", ",", true, decodeInt, formatInt, func(s *editor) *[]int { return &s.Bookmarks }),
	floatField("DistanceSpacing", func(s *editor) *float64 { return &s.DistanceSpacing }),
	intField("BeatDivisor", func(s *editor) *int { return &s.BeatDivisor }),
	intField("GridSize", func(s *editor) *int { return &s.GridSize }),
	floatField("TimelineZoom", func(s *editor) *float64 { return &s.TimelineZoom }),
)

var metadataFields = newFieldTable(
	stringField("Title", func(s *metadata) *string { return &s.Title }),
	stringField("TitleUnicode", func(s *metadata) *string { return &s.TitleUnicode }),
	stringField("Artist", func(s *metadata) *string { return &s.Artist }),
	stringField("ArtistUnicode", func(s *metadata) *string { return &s.ArtistUnicode }),
	stringField("Creator", func(s *metadata) *string { return &s.Creator }),
	stringField("Version", func(s *metadata) *string { return &s.Version }),
	stringField("Source", func(s *metadata) *string { return &s.Source }),
	scalarField("Tags", decodeTags, formatTags, func(s *metadata) *[]string { return &s.Tags }),
	intField("BeatmapID", func(s *metadata) *int { return &s.BeatmapID }),
	intField("BeatmapSetID", func(s *metadata) *int { return &s.BeatmapSetID }),
)

var difficultyFields = newFieldTable(
	floatField("HPDrainRate", func(s *difficulty) *float64 { return &s.HPDrainRate }),
	floatField("CircleSize", func(s *difficulty) *float64 { return &s.CircleSize }),
	floatField("OverallDifficulty", func(s *difficulty) *float64 { return &s.OverallDifficulty }),
	floatField("ApproachRate", func(s *difficulty) *float64 { return &s.ApproachRate }),
	floatField("SliderMultiplier", func(s *difficulty) *float64 { return &s.SliderMultiplier }),
	floatField("SliderTickRate", func(s *difficulty) *float64 { return &s.SliderTickRate }),
)
