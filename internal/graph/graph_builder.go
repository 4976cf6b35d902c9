package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Node is the graph view of one beatmap.
type Node struct {
	Hash         string
	Title        string
	Artist       string
	Creator      string
	Version      string
	Mode         string
	BeatmapSetID int
	Tags         []string
}

// NewNode extracts the graph-relevant fields of a beatmap. Tags are
// lower-cased and deduplicated so that "Anime" and "anime" meet.
func NewNode(hash string, b *beatmap.Beatmap) Node {
	m := b.Metadata
	return Node{
		Hash:         hash,
		Title:        m.Title,
		Artist:       m.Artist,
		Creator:      strings.TrimSpace(m.Creator),
		Version:      m.Version,
		Mode:         b.General.Mode.String(),
		BeatmapSetID: m.BeatmapSetID,
		Tags:         normalizeTags(m.Tags),
	}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Builder writes beatmaps and their relations into Neo4j.
type Builder struct {
	driver neo4j.DriverWithContext
}

// NewBuilder creates a new graph builder.
func NewBuilder(driver neo4j.DriverWithContext) *Builder {
	return &Builder{driver: driver}
}

// EnsureSchema creates uniqueness constraints for every node label.
func (gb *Builder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (b:Beatmap) REQUIRE b.hash IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Creator) REQUIRE c.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:BeatmapSet) REQUIRE s.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Tag) REQUIRE t.name IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// UpsertBeatmap merges the beatmap node, its creator, its set and its tags.
func (gb *Builder) UpsertBeatmap(ctx context.Context, n Node) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MERGE (b:Beatmap {hash: $hash})
		SET b.title = $title,
		    b.artist = $artist,
		    b.version = $version,
		    b.mode = $mode
	`, map[string]any{
		"hash":    n.Hash,
		"title":   n.Title,
		"artist":  n.Artist,
		"version": n.Version,
		"mode":    n.Mode,
	})
	if err != nil {
		return fmt.Errorf("upsert beatmap %s: %w", n.Hash, err)
	}

	if n.Creator != "" {
		_, err = session.Run(ctx, `
			MATCH (b:Beatmap {hash: $hash})
			MERGE (c:Creator {name: $creator})
			MERGE (c)-[:MAPPED]->(b)
		`, map[string]any{"hash": n.Hash, "creator": n.Creator})
		if err != nil {
			return fmt.Errorf("link creator %s: %w", n.Creator, err)
		}
	}

	if n.BeatmapSetID > 0 {
		_, err = session.Run(ctx, `
			MATCH (b:Beatmap {hash: $hash})
			MERGE (s:BeatmapSet {id: $set})
			MERGE (b)-[:IN_SET]->(s)
		`, map[string]any{"hash": n.Hash, "set": int64(n.BeatmapSetID)})
		if err != nil {
			return fmt.Errorf("link set %d: %w", n.BeatmapSetID, err)
		}
	}

	if len(n.Tags) > 0 {
		_, err = session.Run(ctx, `
			MATCH (b:Beatmap {hash: $hash})
			UNWIND $tags AS tag
			MERGE (t:Tag {name: tag})
			MERGE (b)-[:TAGGED]->(t)
		`, map[string]any{"hash": n.Hash, "tags": n.Tags})
		if err != nil {
			return fmt.Errorf("link tags: %w", err)
		}
	}

	return nil
}

// UpsertAll writes every node, logging and skipping the ones that fail.
// It returns how many were written.
func (gb *Builder) UpsertAll(ctx context.Context, nodes []Node) int {
	written := 0
	for _, n := range nodes {
		if ctx.Err() != nil {
			break
		}
		if err := gb.UpsertBeatmap(ctx, n); err != nil {
			log.Warn().Err(err).Str("hash", n.Hash).Str("title", n.Title).Msg("Failed to add beatmap to graph")
			continue
		}
		written++
	}

	log.Info().Int("written", written).Int("total", len(nodes)).Msg("Graph updated")
	return written
}
