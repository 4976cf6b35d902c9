package similar

import (
	"context"
	"errors"
	"testing"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/graph"
	"github.com/eltrufas/osuparse/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVectors struct {
	matches []store.Match
	err     error
	got     []float32
	exclude string
}

func (f *fakeVectors) Search(_ context.Context, v []float32, _ int, exclude string) ([]store.Match, error) {
	f.got = v
	f.exclude = exclude
	return f.matches, f.err
}

type fakeRelations struct {
	tags    []graph.Related
	creator []graph.Related
	set     []graph.Related
	err     error
	asked   string
}

func (f *fakeRelations) RelatedByTags(context.Context, string, int) ([]graph.Related, error) {
	return f.tags, f.err
}

func (f *fakeRelations) ByCreator(_ context.Context, creator, _ string, _ int) ([]graph.Related, error) {
	f.asked = creator
	return f.creator, f.err
}

func (f *fakeRelations) SameSet(context.Context, string) ([]graph.Related, error) {
	return f.set, f.err
}

func queryMap() *beatmap.Beatmap {
	b := beatmap.New(14)
	b.Metadata.Title = "Song"
	b.Metadata.Version = "Hard"
	b.Metadata.Creator = "mapper"
	return b
}

func TestFindCombinesSources(t *testing.T) {
	vs := &fakeVectors{matches: []store.Match{{Hash: "h2", Title: "Near", Artist: "A", Version: "Insane", Creator: "x", Distance: 0.125}}}
	rs := &fakeRelations{
		tags:    []graph.Related{{Hash: "h3", Title: "Tagged", Version: "Normal", SharedTags: []string{"anime"}}},
		creator: []graph.Related{{Hash: "h4", Title: "Mine", Version: "Easy"}},
	}

	res, err := NewFinder(vs, rs).Find(context.Background(), "h1", queryMap(), 5)
	require.NoError(t, err)
	assert.Equal(t, "h1", vs.exclude)
	assert.Equal(t, store.DifficultyVector(queryMap()), vs.got)
	assert.Equal(t, "mapper", rs.asked)
	assert.Len(t, res.Nearest, 1)
	assert.Len(t, res.SharedTags, 1)
	assert.Len(t, res.SameCreator, 1)
	assert.Empty(t, res.SameSet)
	assert.False(t, res.Empty())

	report := BuildReport(res)
	assert.Contains(t, report, "Related to Song [Hard] (h1)")
	assert.Contains(t, report, "1. [0.125] A - Near [Insane] by x")
	assert.Contains(t, report, "• Tagged [Normal] (anime)")
	assert.Contains(t, report, "=== Same creator ===")
	assert.NotContains(t, report, "=== Same set ===")
}

func TestFindSurvivesOneFailingSource(t *testing.T) {
	vs := &fakeVectors{err: errors.New("pg down")}
	rs := &fakeRelations{set: []graph.Related{{Hash: "h5", Title: "Song", Version: "Easy"}}}

	res, err := NewFinder(vs, rs).Find(context.Background(), "h1", queryMap(), 5)
	require.NoError(t, err)
	assert.Empty(t, res.Nearest)
	assert.Len(t, res.SameSet, 1)
}

func TestFindFailsWhenNothingAnswers(t *testing.T) {
	vs := &fakeVectors{err: errors.New("pg down")}
	rs := &fakeRelations{err: errors.New("neo4j down")}

	_, err := NewFinder(vs, rs).Find(context.Background(), "h1", queryMap(), 5)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = NewFinder(nil, nil).Find(context.Background(), "h1", queryMap(), 5)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(&Result{Hash: "0123456789abcdef", Title: "Song", Version: "Hard"})
	assert.Contains(t, report, "(0123456789ab)")
	assert.Contains(t, report, "Nothing related found.")
}
