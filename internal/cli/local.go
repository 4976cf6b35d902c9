package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eltrufas/osuparse/internal/cache"
	"github.com/eltrufas/osuparse/internal/filewalker"
	"github.com/eltrufas/osuparse/internal/parser"
	"github.com/eltrufas/osuparse/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one beatmap and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return runParse(cmd.OutOrStdout(), args[0], output)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func (a *app) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <path> [output]",
		Short: "Rewrite beatmaps in canonical form",
		Long: `Parses a beatmap and writes it back in canonical form.
A single file is written to output, or to stdout when output is omitted.
A directory is mirrored into the output directory, which is then required.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return a.runFormat(cmd.OutOrStdout(), args[0], out)
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <directory>",
		Short: "Parse every beatmap under a directory and report failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.OutOrStdout(), args[0])
		},
	}
}

// runParse handles the `parse` command.
func runParse(w io.Writer, path, output string) error {
	walker := filewalker.NewWalker()
	doc, err := walker.ParseFile(filewalker.Entry{Path: path})
	if err != nil {
		logParseError(path, err)
		return err
	}
	return writeSummary(w, newSummary(doc.Path, doc.Hash, doc.Beatmap), output)
}

// runFormat handles the `format` command.
func (a *app) runFormat(w io.Writer, path, out string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	walker := filewalker.NewWalker()
	if !info.IsDir() {
		doc, err := walker.ParseFile(filewalker.Entry{Path: path})
		if err != nil {
			logParseError(path, err)
			return err
		}
		if out == "" {
			return parser.Write(w, doc.Beatmap)
		}
		return writeCanonical(out, doc)
	}

	if out == "" {
		return errors.New("format: an output directory is required when the input is a directory")
	}

	ctx, cancel := setupContext()
	defer cancel()

	entries, err := walker.Walk(path)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}
	inputAbs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	outputAbs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}

	docs, failed := parseAll(ctx, a.cfg.WorkerCount, walker, nil, entries)
	written := 0
	for _, doc := range docs {
		relPath, err := filepath.Rel(inputAbs, doc.Path)
		if err != nil {
			log.Error().Err(err).Str("file", doc.Path).Msg("Compute relative path")
			continue
		}
		outPath := filepath.Join(outputAbs, relPath)
		if err := writeCanonical(outPath, doc); err != nil {
			log.Error().Err(err).Str("path", outPath).Msg("Write output file")
			continue
		}
		written++
	}

	log.Info().
		Int("files", len(entries)).
		Int("written", written).
		Int("failed", len(failed)).
		Str("output", outputAbs).
		Msg("Format complete")

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to parse", len(failed), len(entries))
	}
	return nil
}

func writeCanonical(outPath string, doc *filewalker.Document) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(parser.Serialize(doc.Beatmap)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Debug().Str("input", doc.Path).Str("output", outPath).Msg("File formatted")
	return nil
}

// runCheck handles the `check` command.
func (a *app) runCheck(w io.Writer, dir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	walker := filewalker.NewWalker()
	entries, err := walker.Walk(dir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	parseCache := cache.NewParseCache(nil)
	docs, failed := parseAll(ctx, a.cfg.WorkerCount, walker, parseCache, entries)
	for _, f := range failed {
		fmt.Fprintln(w, describeFailure(f.Input.Path, f.Err))
	}

	log.Info().
		Int("files", len(entries)).
		Int("ok", len(docs)).
		Int("failed", len(failed)).
		Int("duplicates", countDuplicates(docs)).
		Int("cached", parseCache.Len()).
		Msg("Check complete")

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to parse", len(failed), len(entries))
	}
	return nil
}

// countDuplicates counts documents whose content hash was already seen.
// Workers can race past the cache, so this looks at the results instead.
func countDuplicates(docs []*filewalker.Document) int {
	seen := make(map[string]bool, len(docs))
	dups := 0
	for _, doc := range docs {
		if seen[doc.Hash] {
			dups++
			continue
		}
		seen[doc.Hash] = true
	}
	return dups
}

// parseAll parses entries on the worker pool. With a cache, files whose
// content was already seen are not parsed again.
func parseAll(ctx context.Context, workers int, walker *filewalker.Walker, pc *cache.ParseCache, entries []filewalker.Entry) ([]*filewalker.Document, []worker.Result[filewalker.Entry, *filewalker.Document]) {
	pool := worker.NewPool[filewalker.Entry, *filewalker.Document]("parse", workers,
		func(ctx context.Context, entry filewalker.Entry) (*filewalker.Document, error) {
			if pc == nil {
				return walker.ParseFile(entry)
			}
			data, err := walker.ReadFile(entry)
			if err != nil {
				return nil, err
			}
			b, hash, err := pc.Parse(ctx, data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", entry.Path, err)
			}
			return &filewalker.Document{Path: entry.Path, Hash: hash, Beatmap: b}, nil
		},
	)

	docs, failed := worker.Split(pool.Execute(ctx, entries))
	for _, f := range failed {
		if errors.Is(f.Err, context.Canceled) {
			continue
		}
		logParseError(f.Input.Path, f.Err)
	}
	return docs, failed
}

func logParseError(path string, err error) {
	var pe *parser.Error
	if errors.As(err, &pe) && pe.HasLine {
		log.Error().
			Str("file", path).
			Str("kind", pe.Kind.String()).
			Int("line", pe.Line+1).
			Str("text", pe.Text).
			Msg(pe.Reason)
		return
	}
	log.Error().Err(err).Str("file", path).Msg("Parse failed")
}
