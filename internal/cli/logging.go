package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/eltrufas/osuparse/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging points the global logger at stderr, and also at a rotating
// file when LOG_FILE is set. The returned closer is nil without a file.
func setupLogging(cfg *config.Config, stderr io.Writer) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	var console io.Writer = stderr
	if !strings.EqualFold(cfg.LogFormat, "json") {
		console = zerolog.ConsoleWriter{Out: stderr}
	}

	var (
		out    = console
		closer io.Closer
	)
	if path := strings.TrimSpace(cfg.LogFile); path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return closer, nil
}
