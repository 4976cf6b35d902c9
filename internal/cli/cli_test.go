package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eltrufas/osuparse/internal/config"
	"github.com/eltrufas/osuparse/internal/filewalker"
	"github.com/eltrufas/osuparse/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testMap = `osu file format v14

[General]
AudioFilename: audio.mp3
Mode: 0

[Metadata]
Title:Song
Artist:Artist
Creator:mapper
Version:Hard
Tags:anime ed

[Difficulty]
HPDrainRate:5
CircleSize:4
OverallDifficulty:8
ApproachRate:9
SliderMultiplier:1.4
SliderTickRate:1

[TimingPoints]
0,500,4,2,0,100,1,0

[HitObjects]
256,192,0,5,0,0:0:0:0:
100,100,500,2,0,L|200:100,1,100
256,192,61000,12,0,62000,0:0:0:0:
`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommandText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.osu")
	writeTestFile(t, path, testMap)

	out, err := runRoot(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Artist - Song [Hard]")
	assert.Contains(t, out, "mapped by mapper, osu mode, format v14")
	assert.Contains(t, out, "3 objects (1 circles, 1 sliders, 1 spinners, 0 hold notes), 2 combos")
	assert.Contains(t, out, "length 1:02, 120 BPM, 1 timing points")
}

func TestParseCommandJSONAndYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.osu")
	writeTestFile(t, path, testMap)

	out, err := runRoot(t, "parse", path, "--output", "json")
	require.NoError(t, err)
	var fromJSON summary
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Equal(t, "Song", fromJSON.Title)
	assert.Equal(t, []string{"anime", "ed"}, fromJSON.Tags)
	assert.Equal(t, 9.0, fromJSON.Difficulty.AR)
	assert.Equal(t, 1, fromJSON.Stats.Sliders)

	out, err = runRoot(t, "parse", path, "-o", "yaml")
	require.NoError(t, err)
	var fromYAML summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)
}

func TestParseCommandErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.osu")
	writeTestFile(t, path, "osu file format v14\n[General]\nMode: 7\n")

	_, err := runRoot(t, "parse", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnsupported))

	good := filepath.Join(t.TempDir(), "good.osu")
	writeTestFile(t, good, testMap)
	_, err = runRoot(t, "parse", good, "--output", "xml")
	assert.Error(t, err)
}

func TestFormatCommandFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.osu")
	writeTestFile(t, path, testMap)

	out, err := runRoot(t, "format", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "osu file format v14\n\n[General]\n"))

	want, err := parser.Parse(testMap)
	require.NoError(t, err)
	got, err := parser.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	target := filepath.Join(dir, "out", "canonical.osu")
	_, err = runRoot(t, "format", path, target)
	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestFormatCommandDirectory(t *testing.T) {
	in := t.TempDir()
	writeTestFile(t, filepath.Join(in, "a.osu"), testMap)
	writeTestFile(t, filepath.Join(in, "set", "b.osu"), testMap)
	out := filepath.Join(t.TempDir(), "formatted")

	_, err := runRoot(t, "format", in, out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "a.osu"))
	assert.FileExists(t, filepath.Join(out, "set", "b.osu"))

	_, err = runRoot(t, "format", in)
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "good.osu"), testMap)
	writeTestFile(t, filepath.Join(dir, "copy.osu"), testMap)

	out, err := runRoot(t, "check", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	writeTestFile(t, filepath.Join(dir, "bad.osu"), "osu file format v14\n[HitObjects]\n1,2\n")
	out, err = runRoot(t, "check", dir)
	require.Error(t, err)
	assert.Contains(t, out, "bad.osu:3: incomplete input: hit object has 2 fields, want at least 5")
}

func TestCountDuplicates(t *testing.T) {
	docs := []*filewalker.Document{
		{Path: "a.osu", Hash: "h1"},
		{Path: "b.osu", Hash: "h1"},
		{Path: "c.osu", Hash: "h2"},
		{Path: "d.osu", Hash: "h1"},
	}
	assert.Equal(t, 2, countDuplicates(docs))
	assert.Equal(t, 0, countDuplicates(docs[2:3]))
	assert.Equal(t, 0, countDuplicates(nil))
}

func TestDescribeFailure(t *testing.T) {
	_, err := parser.Parse("")
	assert.Equal(t, "x.osu: incomplete input: input is empty, expected an osu file format header", describeFailure("x.osu", err))
	assert.Equal(t, "x.osu: boom", describeFailure("x.osu", errors.New("boom")))
}

func TestCollectNewSkipsKnownAndDuplicates(t *testing.T) {
	b, err := parser.Parse(testMap)
	require.NoError(t, err)
	docs := []*filewalker.Document{
		{Path: "a.osu", Hash: "h1", Beatmap: b},
		{Path: "b.osu", Hash: "h1", Beatmap: b},
		{Path: "c.osu", Hash: "h2", Beatmap: b},
		{Path: "d.osu", Hash: "h3", Beatmap: b},
	}

	records, nodes := collectNew(docs, map[string]bool{"h2": true})
	require.Len(t, records, 2)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a.osu", records[0].Path)
	assert.Equal(t, "h3", records[1].Hash)
	assert.Equal(t, []string{"anime", "ed"}, nodes[0].Tags)
}

func TestLooksLikeHash(t *testing.T) {
	assert.True(t, looksLikeHash(strings.Repeat("ab", 32)))
	assert.False(t, looksLikeHash("abc"))
	assert.False(t, looksLikeHash(strings.Repeat("zz", 32)))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "?", formatBPM(0, 0))
	assert.Equal(t, "165", formatBPM(164.99999999999983, 164.99999999999983))
	assert.Equal(t, "120-240", formatBPM(120, 240))
	assert.Equal(t, "1:02", formatDuration(62000))
	assert.Equal(t, "0:00", formatDuration(0))
}

func TestSetupLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "osuparse.log")
	closer, err := setupLogging(&config.Config{LogLevel: "debug", LogFormat: "json", LogFile: logPath}, io.Discard)
	require.NoError(t, err)
	require.NotNil(t, closer)
	require.NoError(t, closer.Close())

	closer, err = setupLogging(&config.Config{LogLevel: "info", LogFormat: "console"}, io.Discard)
	require.NoError(t, err)
	assert.Nil(t, closer)

	_, err = setupLogging(&config.Config{LogLevel: "loud"}, io.Discard)
	assert.Error(t, err)
}
