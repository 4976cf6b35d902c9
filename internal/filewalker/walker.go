package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/parser"
	"github.com/eltrufas/osuparse/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Extension is the beatmap file extension, matched case-insensitively.
const Extension = ".osu"

// Entry is a discovered beatmap file.
type Entry struct {
	Path string
	Size int64
}

// Document is a parsed beatmap file.
type Document struct {
	Path    string
	Hash    string
	Beatmap *beatmap.Beatmap
}

// Walker finds and parses beatmap files.
type Walker struct {
	// MaxSize skips files larger than this many bytes. Zero disables the limit.
	MaxSize int64
}

// NewWalker creates a Walker that skips files above 16 MiB.
func NewWalker() *Walker {
	return &Walker{MaxSize: 16 << 20}
}

// Walk discovers all beatmap files under root. Unreadable subtrees are
// logged and skipped. A root that is itself a beatmap file yields one entry.
func (w *Walker) Walk(root string) ([]Entry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		if !isBeatmap(root) {
			return nil, fmt.Errorf("not a beatmap file: %s", root)
		}
		return []Entry{{Path: root, Size: info.Size()}}, nil
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isBeatmap(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot stat file")
			return nil
		}
		if w.MaxSize > 0 && info.Size() > w.MaxSize {
			log.Warn().Str("path", path).Int64("size", info.Size()).Msg("Skipping oversized file")
			return nil
		}
		entries = append(entries, Entry{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered beatmaps")
	return entries, nil
}

// ParseFile reads and parses one entry. Parse failures are returned as
// *parser.Error wrapped with the file path.
func (w *Walker) ParseFile(entry Entry) (*Document, error) {
	data, err := w.ReadFile(entry)
	if err != nil {
		return nil, err
	}
	b, err := parser.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", entry.Path, err)
	}
	return &Document{Path: entry.Path, Hash: textutil.Hash(data), Beatmap: b}, nil
}

// ReadFile returns the raw content of an entry.
func (w *Walker) ReadFile(entry Entry) ([]byte, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry.Path, err)
	}
	return data, nil
}

func isBeatmap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}
