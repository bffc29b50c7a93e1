package config

import (
	"errors"
	"fmt"
	"strings"

	engineopts "github.com/phyten/todolint/internal/engine/opts"
	"github.com/phyten/todolint/internal/termcolor"
)

var logLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}}

func CanonicalizeLogLevel(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	if level == "" {
		return "info", nil
	}
	if _, ok := logLevels[level]; !ok {
		return "", fmt.Errorf("invalid log_level: %s", raw)
	}
	if level == "warning" {
		return "warn", nil
	}
	return level, nil
}

// NormalizeUI は出力形式・色・ログレベルを正規化します。複数の値が不正な場合はまとめて返します。
func NormalizeUI(values UISettings) (UISettings, error) {
	var errs []error

	out, err := engineopts.NormalizeOutput(values.Output)
	if err != nil {
		errs = append(errs, err)
	} else {
		values.Output = out
	}
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		errs = append(errs, err)
	} else {
		values.Color = mode.String()
	}
	level, err := CanonicalizeLogLevel(values.LogLevel)
	if err != nil {
		errs = append(errs, err)
	} else {
		values.LogLevel = level
	}
	return values, errors.Join(errs...)
}
