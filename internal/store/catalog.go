package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eltrufas/osuparse/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Entry is the summary row of a catalogued beatmap.
type Entry struct {
	Hash     string   `json:"hash"`
	Path     string   `json:"path"`
	Mode     string   `json:"mode"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	Creator  string   `json:"creator"`
	Version  string   `json:"version"`
	Tags     []string `json:"tags"`
	Objects  int      `json:"objects"`
	LengthMs int      `json:"length_ms"`
	MinBPM   float64  `json:"min_bpm"`
	MaxBPM   float64  `json:"max_bpm"`
}

// Catalog persists parsed beatmaps in PostgreSQL.
type Catalog struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewCatalog creates a catalog that writes in batches of batchSize rows.
func NewCatalog(pool *pgxpool.Pool, batchSize int) *Catalog {
	return &Catalog{pool: pool, batchSize: batchSize}
}

// EnsureSchema creates the catalog table and its indexes.
func (c *Catalog) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, catalogSchema); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	return nil
}

var beatmapColumns = []string{
	"hash", "path", "format_version", "mode", "title", "artist", "creator", "version", "source", "tags",
	"beatmap_id", "beatmapset_id", "hp", "cs", "od", "ar", "objects", "length_ms", "min_bpm", "max_bpm", "canonical",
}

var upsertBeatmap = buildUpsert("beatmaps", "hash", beatmapColumns)

// buildUpsert writes an INSERT that overwrites every column but key on
// conflict, so re-indexing refreshes derived data.
func buildUpsert(table, key string, columns []string) string {
	placeholders := make([]string, len(columns))
	var updates []string
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != key {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	updates = append(updates, "indexed_at = now()")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)\nON CONFLICT (%s) DO UPDATE SET\n\t%s",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), key, strings.Join(updates, ",\n\t"))
}

// Upsert inserts records, deduplicating by content hash. A record whose
// hash is already known is overwritten with the new values.
func (c *Catalog) Upsert(ctx context.Context, records []Record) (int, error) {
	written := 0
	for _, chunk := range worker.Batch(records, c.batchSize) {
		batch := &pgx.Batch{}
		for _, r := range chunk {
			tags := r.Tags
			if tags == nil {
				tags = []string{}
			}
			batch.Queue(upsertBeatmap,
				r.Hash, r.Path, r.FormatVer, int(r.Mode), r.Title, r.Artist, r.Creator, r.Version, r.Source, tags,
				r.BeatmapID, r.BeatmapSetID, r.Difficulty.HPDrainRate, r.Difficulty.CircleSize,
				r.Difficulty.OverallDifficulty, r.Difficulty.ApproachRate, r.Stats.Objects(), r.Stats.Length(),
				r.Stats.MinBPM, r.Stats.MaxBPM, r.Canonical,
			)
		}

		br := c.pool.SendBatch(ctx, batch)
		for _, r := range chunk {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return written, fmt.Errorf("upsert beatmap %s: %w", r.Hash, err)
			}
			written++
		}
		if err := br.Close(); err != nil {
			return written, fmt.Errorf("close batch: %w", err)
		}
	}

	log.Info().Int("count", written).Msg("Upserted catalog rows")
	return written, nil
}

// Canonical returns the stored canonical text for hash.
func (c *Catalog) Canonical(ctx context.Context, hash string) (string, bool, error) {
	var text string
	err := c.pool.QueryRow(ctx, `SELECT canonical FROM beatmaps WHERE hash = $1`, hash).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query canonical text: %w", err)
	}
	return text, true, nil
}

// Known returns the set of hashes already in the catalog.
func (c *Catalog) Known(ctx context.Context) (map[string]bool, error) {
	rows, err := c.pool.Query(ctx, `SELECT hash FROM beatmaps`)
	if err != nil {
		return nil, fmt.Errorf("query known hashes: %w", err)
	}
	hashes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan known hashes: %w", err)
	}

	known := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		known[h] = true
	}
	return known, nil
}

const selectEntries = `
SELECT hash, path, mode, title, artist, creator, version, tags, objects, length_ms, min_bpm, max_bpm
FROM beatmaps`

// List returns every catalogued beatmap ordered by artist and title.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.pool.Query(ctx, selectEntries+` ORDER BY artist, title, version`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		var mode int16
		err := row.Scan(&e.Hash, &e.Path, &mode, &e.Title, &e.Artist, &e.Creator, &e.Version,
			&e.Tags, &e.Objects, &e.LengthMs, &e.MinBPM, &e.MaxBPM)
		e.Mode = modeName(mode)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan catalog rows: %w", err)
	}
	return entries, nil
}
