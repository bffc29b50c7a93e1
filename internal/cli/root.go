// Package cli は todolint のコマンドラインを定義します。
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/logging"
	"github.com/phyten/todolint/internal/termcolor"
)

// ErrDiagnostics は診断が 1 件以上報告されたことを表します。終了コード 1 に対応します。
var ErrDiagnostics = errors.New("diagnostics reported")

// IO はコマンドの入出力と環境です。Environ は KEY=VALUE 形式です。
type IO struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Environ []string
}

func (s IO) withDefaults() IO {
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.Environ == nil {
		s.Environ = os.Environ()
	}
	return s
}

// Execute はルートコマンドを組み立てて args で実行します。
func Execute(ctx context.Context, args []string, stdio IO) error {
	if ctx == nil {
		ctx = context.Background()
	}
	stdio = stdio.withDefaults()
	env := termcolor.EnvMap(stdio.Environ)

	cmd := newRootCommand(stdio, env)
	cmd.SetArgs(args)
	cmd.SetOut(stdio.Stdout)
	cmd.SetErr(stdio.Stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(stdio IO, env map[string]string) *cobra.Command {
	flags := &lintFlags{}
	cmd := &cobra.Command{
		Use:           "todolint [paths...]",
		Short:         "todolint reports TODO comments without an owner or issue tag",
		Long:          "todolint scans source files for TODO comments and reports the ones not tagged as TODO(@username) or TODO(#issue).",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			raw := env["TODOLINT_LOG_LEVEL"]
			if cmd.Flags().Changed("log-level") {
				raw = flags.logLevel
			}
			logger := newLogger(stdio, env, logging.ParseLevel(raw))
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, stdio, env)
		},
	}
	flags.register(cmd)
	cmd.AddCommand(newRulesCommand())
	return cmd
}

func newLogger(stdio IO, env map[string]string, level logging.Level) *slog.Logger {
	f, _ := stdio.Stderr.(*os.File)
	palette := termcolor.Resolve(termcolor.ModeAuto, f, env)
	return logging.NewLogger(stdio.Stderr, level, !palette.Enabled)
}

// ErrorLogger はコマンドの外で失敗を報告するためのロガーです。色は stderr と環境変数で決めます。
func ErrorLogger(stdio IO) *slog.Logger {
	stdio = stdio.withDefaults()
	return newLogger(stdio, termcolor.EnvMap(stdio.Environ), logging.LevelInfo)
}

type loggerKey struct{}

// LoggerFromContext はコマンドのコンテキストからロガーを取り出します。無ければ何も出力しないロガーです。
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.Discard()
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.Discard()
}
