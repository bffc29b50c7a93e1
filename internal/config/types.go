package config

import (
	"strings"

	"github.com/phyten/todolint/internal/engine"
)

// EngineConfig は走査と検査に関する設定の 1 レイヤーです。未指定の項目は nil のままです。
type EngineConfig struct {
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	Langs          *[]string `yaml:"langs" toml:"langs" json:"langs"`
	Rules          *[]string `yaml:"rules" toml:"rules" json:"rules"`
	DisableRules   *[]string `yaml:"disable" toml:"disable" json:"disable"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
}

// UIConfig は出力まわりの設定レイヤーです。
type UIConfig struct {
	Output   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	LogLevel *string `yaml:"log_level" toml:"log_level" json:"log_level"`
	Progress *bool   `yaml:"progress" toml:"progress" json:"progress"`
	WithLink *bool   `yaml:"with_link" toml:"with_link" json:"with_link"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	Langs          []string
	Rules          []string
	DisableRules   []string
	Jobs           int
	Repo           string
	MaxFileBytes   int
}

type UISettings struct {
	Output   string
	Color    string
	LogLevel string
	Progress *bool
	WithLink bool
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		Langs:          cloneStrings(opts.Langs),
		Rules:          cloneStrings(opts.Rules),
		DisableRules:   cloneStrings(opts.DisableRules),
		Jobs:           opts.Jobs,
		Repo:           opts.RepoDir,
		MaxFileBytes:   opts.MaxFileBytes,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.Langs = cloneStrings(s.Langs)
	opts.Rules = cloneStrings(s.Rules)
	opts.DisableRules = cloneStrings(s.DisableRules)
	opts.Jobs = s.Jobs
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
	opts.MaxFileBytes = s.MaxFileBytes
}

// DefaultUISettings は表形式・自動色判定・info レベルを返します。Progress は nil で TTY 判定に任せます。
func DefaultUISettings() UISettings {
	return UISettings{
		Output:   "table",
		Color:    "auto",
		LogLevel: "info",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
