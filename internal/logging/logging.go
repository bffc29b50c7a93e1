// Package logging は tint ハンドラーを使った slog ロガーを組み立てます。
package logging

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Level は todolint が使うログレベルです。
type Level slog.Level

const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

func (l Level) String() string {
	return slog.Level(l).String()
}

// ParseLevel は文字列からレベルを得ます。未知の値は info として扱います。
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// NewLogger は w へ出力する slog.Logger を返します。noColor が真なら ANSI 色を付けません。
func NewLogger(w io.Writer, level Level, noColor bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.Level(level),
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
	return slog.New(handler)
}

// Discard は何も出力しないロガーを返します。
func Discard() *slog.Logger {
	return slog.New(tint.NewHandler(io.Discard, &tint.Options{Level: slog.Level(math.MaxInt)}))
}
