package file_editor

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger sets zerolog's timestamp format and returns the logger used by
// the server. Output always goes
// to stderr: stdout is the MCP stdio transport's wire channel, and writing
// log lines there would corrupt the JSON-RPC stream.
func InitLogger(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		lvl = parsed
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
