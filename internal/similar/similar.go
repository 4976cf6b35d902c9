// Package similar looks up catalogued beatmaps related to a given one,
// combining difficulty vectors with the catalog graph.
package similar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/graph"
	"github.com/eltrufas/osuparse/internal/store"
	"github.com/eltrufas/osuparse/internal/textutil"

	"github.com/rs/zerolog/log"
)

// VectorSearcher finds beatmaps with nearby difficulty vectors.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, topK int, exclude string) ([]store.Match, error)
}

// RelationSource answers graph questions about a beatmap.
type RelationSource interface {
	RelatedByTags(ctx context.Context, hash string, limit int) ([]graph.Related, error)
	ByCreator(ctx context.Context, creator, exclude string, limit int) ([]graph.Related, error)
	SameSet(ctx context.Context, hash string) ([]graph.Related, error)
}

// ErrNoSource is returned when every lookup failed.
var ErrNoSource = errors.New("no lookup source answered")

// Result holds everything found for one beatmap.
type Result struct {
	Hash        string
	Title       string
	Version     string
	Nearest     []store.Match
	SharedTags  []graph.Related
	SameCreator []graph.Related
	SameSet     []graph.Related
}

// Empty reports whether nothing related was found.
func (r *Result) Empty() bool {
	return len(r.Nearest) == 0 && len(r.SharedTags) == 0 && len(r.SameCreator) == 0 && len(r.SameSet) == 0
}

// Finder combines the vector index and the graph. Either may be nil.
type Finder struct {
	vectors   VectorSearcher
	relations RelationSource
}

// NewFinder creates a new combined finder.
func NewFinder(vs VectorSearcher, rs RelationSource) *Finder {
	return &Finder{vectors: vs, relations: rs}
}

// Find looks up beatmaps related to b, whose content hash is hash. A
// failing source is logged and skipped; an error is returned only when
// no source answered.
func (f *Finder) Find(ctx context.Context, hash string, b *beatmap.Beatmap, topK int) (*Result, error) {
	result := &Result{Hash: hash, Title: b.Metadata.Title, Version: b.Metadata.Version}
	answered := 0

	if f.vectors != nil {
		nearest, err := f.vectors.Search(ctx, store.DifficultyVector(b), topK, hash)
		if err != nil {
			log.Warn().Err(err).Str("title", textutil.Truncate(b.Metadata.Title, 40)).Msg("Vector search failed")
		} else {
			result.Nearest = nearest
			answered++
		}
	}

	if f.relations != nil {
		ok := false
		if tags, err := f.relations.RelatedByTags(ctx, hash, topK); err != nil {
			log.Warn().Err(err).Msg("Tag query failed")
		} else {
			result.SharedTags = tags
			ok = true
		}
		if creator := strings.TrimSpace(b.Metadata.Creator); creator != "" {
			if same, err := f.relations.ByCreator(ctx, creator, hash, topK); err != nil {
				log.Warn().Err(err).Str("creator", creator).Msg("Creator query failed")
			} else {
				result.SameCreator = same
				ok = true
			}
		}
		if set, err := f.relations.SameSet(ctx, hash); err != nil {
			log.Warn().Err(err).Msg("Set query failed")
		} else {
			result.SameSet = set
			ok = true
		}
		if ok {
			answered++
		}
	}

	if answered == 0 {
		return nil, ErrNoSource
	}
	return result, nil
}

// BuildReport formats a result for the terminal.
func BuildReport(r *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Related to %s [%s] (%s)\n\n", r.Title, r.Version, shortHash(r.Hash))

	if r.Empty() {
		sb.WriteString("Nothing related found.\n")
		return sb.String()
	}

	if len(r.Nearest) > 0 {
		sb.WriteString("=== Similar difficulty ===\n")
		for i, m := range r.Nearest {
			fmt.Fprintf(&sb, "%d. [%.3f] %s - %s [%s] by %s\n", i+1, m.Distance, m.Artist, m.Title, m.Version, m.Creator)
		}
		sb.WriteString("\n")
	}

	writeRelated(&sb, "Shared tags", r.SharedTags)
	writeRelated(&sb, "Same creator", r.SameCreator)
	writeRelated(&sb, "Same set", r.SameSet)
	return sb.String()
}

func writeRelated(sb *strings.Builder, heading string, related []graph.Related) {
	if len(related) == 0 {
		return
	}
	fmt.Fprintf(sb, "=== %s ===\n", heading)
	for _, rel := range related {
		fmt.Fprintf(sb, "• %s [%s]", rel.Title, rel.Version)
		if len(rel.SharedTags) > 0 {
			fmt.Fprintf(sb, " (%s)", strings.Join(rel.SharedTags, ", "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
