package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/todolint/internal/engine/opts"
)

// FromEnv は TODOLINT_* 環境変数から設定レイヤーを作ります。不正な値はまとめて errors.Join で返します。
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setList(&cfg.Engine.Paths, "TODOLINT_PATH")
	setList(&cfg.Engine.Excludes, "TODOLINT_EXCLUDE")
	setList(&cfg.Engine.PathRegex, "TODOLINT_PATH_REGEX")
	setList(&cfg.Engine.Langs, "TODOLINT_LANGS")
	setList(&cfg.Engine.Rules, "TODOLINT_RULES")
	setList(&cfg.Engine.DisableRules, "TODOLINT_DISABLE")
	setBool(&cfg.Engine.ExcludeTypical, "TODOLINT_EXCLUDE_TYPICAL")
	setInt(&cfg.Engine.MaxFileBytes, "TODOLINT_MAX_FILE_BYTES", 0, math.MaxInt)
	// 上限は NormalizeAndValidate に任せ、どの入力経路でも同じエラーになるようにする
	setInt(&cfg.Engine.Jobs, "TODOLINT_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.Repo, "TODOLINT_REPO")

	setString(&cfg.UI.Output, "TODOLINT_OUTPUT")
	setString(&cfg.UI.Color, "TODOLINT_COLOR")
	setString(&cfg.UI.LogLevel, "TODOLINT_LOG_LEVEL")
	setBool(&cfg.UI.Progress, "TODOLINT_PROGRESS")
	setBool(&cfg.UI.WithLink, "TODOLINT_WITH_LINK")
	if raw := strings.TrimSpace(getenv("TODOLINT_NO_PROGRESS")); raw != "" {
		v, err := engineopts.ParseBool(raw, "TODOLINT_NO_PROGRESS")
		if err != nil {
			errs = append(errs, err)
		} else {
			value := !v
			cfg.UI.Progress = &value
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
