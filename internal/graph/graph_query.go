package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Related is a beatmap connected to the queried one.
type Related struct {
	Hash    string
	Title   string
	Version string
	// SharedTags is empty for creator and set lookups.
	SharedTags []string
}

// Querier reads beatmap relations from Neo4j.
type Querier struct {
	driver neo4j.DriverWithContext
}

// NewQuerier creates a new graph querier.
func NewQuerier(driver neo4j.DriverWithContext) *Querier {
	return &Querier{driver: driver}
}

// RelatedByTags ranks other beatmaps by how many tags they share with hash.
func (gq *Querier) RelatedByTags(ctx context.Context, hash string, limit int) ([]Related, error) {
	related, err := gq.collect(ctx, `
		MATCH (b:Beatmap {hash: $hash})-[:TAGGED]->(t:Tag)<-[:TAGGED]-(other:Beatmap)
		WHERE other.hash <> $hash
		WITH other, collect(t.name) AS tags
		RETURN other.hash AS hash, other.title AS title, other.version AS version, tags
		ORDER BY size(tags) DESC, hash
		LIMIT $limit
	`, map[string]any{"hash": hash, "limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("query related by tags: %w", err)
	}

	log.Debug().Str("hash", hash).Int("related", len(related)).Msg("Tag query complete")
	return related, nil
}

// ByCreator lists other beatmaps by the same creator.
func (gq *Querier) ByCreator(ctx context.Context, creator, exclude string, limit int) ([]Related, error) {
	related, err := gq.collect(ctx, `
		MATCH (:Creator {name: $creator})-[:MAPPED]->(b:Beatmap)
		WHERE b.hash <> $exclude
		RETURN b.hash AS hash, b.title AS title, b.version AS version, [] AS tags
		ORDER BY title, version
		LIMIT $limit
	`, map[string]any{"creator": creator, "exclude": exclude, "limit": int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("query by creator: %w", err)
	}
	return related, nil
}

// SameSet lists the other difficulties of the set hash belongs to.
func (gq *Querier) SameSet(ctx context.Context, hash string) ([]Related, error) {
	related, err := gq.collect(ctx, `
		MATCH (b:Beatmap {hash: $hash})-[:IN_SET]->(:BeatmapSet)<-[:IN_SET]-(other:Beatmap)
		RETURN other.hash AS hash, other.title AS title, other.version AS version, [] AS tags
		ORDER BY version
	`, map[string]any{"hash": hash})
	if err != nil {
		return nil, fmt.Errorf("query same set: %w", err)
	}
	return related, nil
}

func (gq *Querier) collect(ctx context.Context, cypher string, params map[string]any) ([]Related, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var related []Related
	for result.Next(ctx) {
		related = append(related, relatedFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return related, nil
}

func relatedFromRecord(record *neo4j.Record) Related {
	hash, _ := record.Get("hash")
	title, _ := record.Get("title")
	version, _ := record.Get("version")
	tags, _ := record.Get("tags")

	r := Related{
		Hash:    fmt.Sprintf("%v", hash),
		Title:   fmt.Sprintf("%v", title),
		Version: fmt.Sprintf("%v", version),
	}
	if list, ok := tags.([]any); ok {
		for _, t := range list {
			r.SharedTags = append(r.SharedTags, fmt.Sprintf("%v", t))
		}
	}
	return r
}
