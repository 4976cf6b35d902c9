package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/cache"
	"github.com/eltrufas/osuparse/internal/filewalker"
	"github.com/eltrufas/osuparse/internal/graph"
	"github.com/eltrufas/osuparse/internal/similar"
	"github.com/eltrufas/osuparse/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <directory>",
		Short: "Parse beatmaps and store them in the catalog, vector index and graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return a.runIndex(args[0], force)
		},
	}
	cmd.Flags().Bool("force", false, "Re-index beatmaps that are already catalogued")
	return cmd
}

func (a *app) similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <file|hash>",
		Short: "Find catalogued beatmaps related to a file or a catalogued hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topK, _ := cmd.Flags().GetInt("top")
			return a.runSimilar(cmd.OutOrStdout(), args[0], topK)
		},
	}
	cmd.Flags().Int("top", 0, "Number of results per source (default SIMILAR_TOP_K)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output>",
		Short: "Export the catalog as TSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return a.runExport(args[0], format)
		},
	}
	cmd.Flags().String("format", "tsv", "Export format: tsv or json")
	return cmd
}

// runIndex handles the `index` command.
func (a *app) runIndex(dir string, force bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := a.cfg
	pgPool, neo4jDriver, err := initDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()
	defer neo4jDriver.Close(ctx)

	catalog := store.NewCatalog(pgPool, cfg.BatchSize)
	if err := catalog.EnsureSchema(ctx); err != nil {
		return err
	}
	index := store.NewDifficultyIndex(pgPool, cfg.BatchSize)
	if err := index.EnsureSchema(ctx); err != nil {
		return err
	}
	graphBuilder := graph.NewBuilder(neo4jDriver)
	if err := graphBuilder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}

	walker := filewalker.NewWalker()
	entries, err := walker.Walk(dir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}
	log.Info().Int("files", len(entries)).Msg("Starting indexing")

	known := map[string]bool{}
	if !force {
		if known, err = catalog.Known(ctx); err != nil {
			return err
		}
	}

	docs, failed := parseAll(ctx, cfg.WorkerCount, walker, cache.NewParseCache(nil), entries)
	if err := ctx.Err(); err != nil {
		return err
	}

	records, nodes := collectNew(docs, known)
	log.Info().
		Int("parsed", len(docs)).
		Int("failed", len(failed)).
		Int("new", len(records)).
		Msg("Index plan")

	if _, err := catalog.Upsert(ctx, records); err != nil {
		return err
	}
	if err := index.Store(ctx, records); err != nil {
		return err
	}
	graphed := graphBuilder.UpsertAll(ctx, nodes)

	log.Info().
		Int("files", len(entries)).
		Int("catalogued", len(records)).
		Int("graphed", graphed).
		Int("failed", len(failed)).
		Msg("Indexing complete")
	return nil
}

// collectNew turns parsed documents into catalog records and graph nodes,
// skipping known hashes and duplicate content within the run.
func collectNew(docs []*filewalker.Document, known map[string]bool) ([]store.Record, []graph.Node) {
	seen := make(map[string]bool, len(docs))
	var records []store.Record
	var nodes []graph.Node
	for _, doc := range docs {
		if known[doc.Hash] || seen[doc.Hash] {
			continue
		}
		seen[doc.Hash] = true
		records = append(records, store.NewRecord(doc.Path, doc.Hash, doc.Beatmap))
		nodes = append(nodes, graph.NewNode(doc.Hash, doc.Beatmap))
	}
	return records, nodes
}

// runSimilar handles the `similar` command.
func (a *app) runSimilar(w io.Writer, target string, topK int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := a.cfg
	if topK <= 0 {
		topK = cfg.SimilarTopK
	}

	pgPool, neo4jDriver, err := initDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()
	defer neo4jDriver.Close(ctx)

	catalog := store.NewCatalog(pgPool, cfg.BatchSize)
	parseCache := cache.NewParseCache(catalog)

	b, hash, err := resolveTarget(ctx, parseCache, target)
	if err != nil {
		return err
	}

	finder := similar.NewFinder(
		store.NewDifficultyIndex(pgPool, cfg.BatchSize),
		graph.NewQuerier(neo4jDriver),
	)
	result, err := finder.Find(ctx, hash, b, topK)
	if err != nil {
		return fmt.Errorf("find similar: %w", err)
	}

	_, err = io.WriteString(w, similar.BuildReport(result))
	return err
}

// resolveTarget reads target as a file, or, when no such file exists and
// target looks like a content hash, loads it from the catalog.
func resolveTarget(ctx context.Context, pc *cache.ParseCache, target string) (*beatmap.Beatmap, string, error) {
	data, err := os.ReadFile(target)
	if err == nil {
		b, hash, err := pc.Parse(ctx, data)
		if err != nil {
			logParseError(target, err)
			return nil, "", err
		}
		return b, hash, nil
	}
	if !errors.Is(err, os.ErrNotExist) || !looksLikeHash(target) {
		return nil, "", fmt.Errorf("read %s: %w", target, err)
	}

	hash := strings.ToLower(target)
	b, ok := pc.Get(ctx, hash)
	if !ok {
		return nil, "", fmt.Errorf("beatmap %s is not in the catalog", hash)
	}
	return b, hash, nil
}

func looksLikeHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// runExport handles the `export` command.
func (a *app) runExport(output, format string) error {
	ctx, cancel := setupContext()
	defer cancel()

	pgPool, err := initPostgres(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	catalog := store.NewCatalog(pgPool, a.cfg.BatchSize)
	switch strings.ToLower(format) {
	case "json":
		if err := catalog.ExportJSON(ctx, output); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	case "tsv":
		if err := catalog.ExportTSV(ctx, output); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q (want tsv or json)", format)
	}
	return nil
}
