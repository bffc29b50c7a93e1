package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/phyten/todolint/internal/cli"
)

// 終了コード: 0 問題なし、1 診断あり、2 実行エラー
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:], cli.IO{})
	stop()
	if err == nil {
		return
	}
	if errors.Is(err, cli.ErrDiagnostics) {
		os.Exit(1)
	}
	cli.ErrorLogger(cli.IO{}).Error("command failed", "error", err)
	os.Exit(2)
}
