package store

import (
	"context"
	"fmt"

	"github.com/eltrufas/osuparse/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// Match is a beatmap found near a query vector.
type Match struct {
	Hash     string
	Title    string
	Artist   string
	Creator  string
	Version  string
	Distance float64
}

// DifficultyIndex stores difficulty vectors in pgvector and searches them
// by Euclidean distance.
type DifficultyIndex struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewDifficultyIndex creates a new index.
func NewDifficultyIndex(pool *pgxpool.Pool, batchSize int) *DifficultyIndex {
	return &DifficultyIndex{pool: pool, batchSize: batchSize}
}

// EnsureSchema enables the vector extension and creates the vector table.
// The catalog schema must exist first.
func (di *DifficultyIndex) EnsureSchema(ctx context.Context) error {
	if _, err := di.pool.Exec(ctx, vectorSchema); err != nil {
		return fmt.Errorf("create vector schema: %w", err)
	}
	return nil
}

// Store batch-upserts the vectors of records.
func (di *DifficultyIndex) Store(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	for _, chunk := range worker.Batch(records, di.batchSize) {
		batch := &pgx.Batch{}
		for _, r := range chunk {
			batch.Queue(`
				INSERT INTO difficulty_vectors (hash, embedding) VALUES ($1, $2)
				ON CONFLICT (hash) DO UPDATE SET embedding = EXCLUDED.embedding
			`, r.Hash, pgvector.NewVector(r.Vector))
		}
		if err := di.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert difficulty vectors: %w", err)
		}
	}

	log.Info().Int("count", len(records)).Msg("Stored difficulty vectors")
	return nil
}

// Search finds the topK beatmaps nearest to vector, leaving out exclude.
func (di *DifficultyIndex) Search(ctx context.Context, vector []float32, topK int, exclude string) ([]Match, error) {
	if len(vector) != VectorDimensions {
		return nil, fmt.Errorf("vector search: want %d dimensions, got %d", VectorDimensions, len(vector))
	}

	rows, err := di.pool.Query(ctx, `
		SELECT b.hash, b.title, b.artist, b.creator, b.version, v.embedding <-> $1 AS distance
		FROM difficulty_vectors v
		JOIN beatmaps b ON b.hash = v.hash
		WHERE v.hash <> $2
		ORDER BY distance
		LIMIT $3
	`, pgvector.NewVector(vector), exclude, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Match, error) {
		var m Match
		err := row.Scan(&m.Hash, &m.Title, &m.Artist, &m.Creator, &m.Version, &m.Distance)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vector matches: %w", err)
	}
	return matches, nil
}
