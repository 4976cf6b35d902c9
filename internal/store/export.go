package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"

	"github.com/rs/zerolog/log"
)

// ExportJSON writes every catalog entry to outputPath as a JSON array.
func (c *Catalog) ExportJSON(ctx context.Context, outputPath string) error {
	return c.export(ctx, outputPath, "JSON", WriteJSON)
}

// ExportTSV writes every catalog entry to outputPath as tab-separated values.
func (c *Catalog) ExportTSV(ctx context.Context, outputPath string) error {
	return c.export(ctx, outputPath, "TSV", WriteTSV)
}

func (c *Catalog) export(ctx context.Context, outputPath, format string, write func(io.Writer, []Entry) error) error {
	entries, err := c.List(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s file: %w", format, err)
	}
	defer f.Close()

	if err := write(f, entries); err != nil {
		return err
	}

	log.Info().Str("path", outputPath).Int("entries", len(entries)).Msgf("Exported catalog to %s", format)
	return nil
}

// WriteJSON encodes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if entries == nil {
		entries = []Entry{}
	}
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteTSV writes a header line and one line per entry.
func WriteTSV(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, "hash\tmode\tartist\ttitle\tversion\tcreator\tobjects\tlength_ms\ttags\tpath"); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			e.Hash,
			e.Mode,
			escapeTSV(e.Artist),
			escapeTSV(e.Title),
			escapeTSV(e.Version),
			escapeTSV(e.Creator),
			e.Objects,
			e.LengthMs,
			escapeTSV(strings.Join(e.Tags, " ")),
			escapeTSV(e.Path),
		)
		if err != nil {
			return fmt.Errorf("write TSV row: %w", err)
		}
	}
	return nil
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

func modeName(m int16) string {
	mode := beatmap.GameMode(m)
	if !mode.Valid() {
		return fmt.Sprintf("mode(%d)", m)
	}
	return mode.String()
}
