package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/config"
	"github.com/phyten/todolint/internal/engine"
	engineopts "github.com/phyten/todolint/internal/engine/opts"
	"github.com/phyten/todolint/internal/gitlink"
	"github.com/phyten/todolint/internal/logging"
	"github.com/phyten/todolint/internal/output"
	"github.com/phyten/todolint/internal/termcolor"
	"github.com/phyten/todolint/internal/util"
)

const defaultTextWidth = 80

type lintFlags struct {
	configPath     string
	repo           string
	output         string
	fields         string
	color          string
	logLevel       string
	jobs           int
	maxFileBytes   int
	textWidth      int
	excludes       []string
	pathRegex      []string
	langs          []string
	rules          []string
	disable        []string
	excludeTypical bool
	progress       bool
	noProgress     bool
	withLink       bool
}

func (f *lintFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a config file (.yaml, .yml, .toml, .json)")
	fs.StringVar(&f.repo, "repo", ".", "Repository root to scan")
	fs.StringVarP(&f.output, "output", "o", "table", "Output format (table, json, ndjson, csv, md)")
	fs.StringVar(&f.fields, "fields", "", "Columns for table/csv/md (location, file, line, col, lang, code, message, text)")
	fs.StringVar(&f.color, "color", "auto", "Colorize table output (auto, always, never)")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "Max parallel workers (default: number of CPUs)")
	fs.IntVar(&f.maxFileBytes, "max-file-bytes", 0, "Skip files larger than N bytes (0 = unlimited)")
	fs.IntVar(&f.textWidth, "text-width", defaultTextWidth, "Truncate the TEXT column to N cells in table output (0 = unlimited)")
	fs.StringArrayVar(&f.excludes, "exclude", nil, "Glob to exclude (repeatable, comma separated)")
	fs.StringArrayVar(&f.pathRegex, "path-regex", nil, "Only lint paths matching the regexp (repeatable)")
	fs.StringArrayVar(&f.langs, "lang", nil, "Only lint these languages (repeatable, comma separated)")
	fs.StringArrayVar(&f.rules, "rule", nil, "Enable only these rule codes (repeatable, comma separated)")
	fs.StringArrayVar(&f.disable, "disable", nil, "Disable these rule codes (repeatable, comma separated)")
	fs.BoolVar(&f.excludeTypical, "exclude-typical", true, "Skip vendor/, node_modules/, dist/, build/, target/ and *.min.*")
	fs.BoolVar(&f.progress, "progress", false, "Force the progress line even when piped")
	fs.BoolVar(&f.noProgress, "no-progress", false, "Disable the progress line")
	fs.BoolVar(&f.withLink, "with-link", false, "Add a code host URL (origin remote at HEAD) to each diagnostic")
}

// layer はコマンドラインで明示された値だけを設定レイヤーにします。
func (f *lintFlags) layer(cmd *cobra.Command, args []string) config.Config {
	var cfg config.Config
	changed := cmd.Flags().Changed
	list := func(values []string) *[]string {
		out := engineopts.SplitMulti(values)
		if out == nil {
			out = []string{}
		}
		return &out
	}

	if len(args) > 0 {
		paths := append([]string(nil), args...)
		cfg.Engine.Paths = &paths
	}
	if changed("exclude") {
		cfg.Engine.Excludes = list(f.excludes)
	}
	if changed("path-regex") {
		values := append([]string(nil), f.pathRegex...)
		cfg.Engine.PathRegex = &values
	}
	if changed("lang") {
		cfg.Engine.Langs = list(f.langs)
	}
	if changed("rule") {
		cfg.Engine.Rules = list(f.rules)
	}
	if changed("disable") {
		cfg.Engine.DisableRules = list(f.disable)
	}
	if changed("exclude-typical") {
		cfg.Engine.ExcludeTypical = &f.excludeTypical
	}
	if changed("jobs") {
		cfg.Engine.Jobs = &f.jobs
	}
	if changed("max-file-bytes") {
		cfg.Engine.MaxFileBytes = &f.maxFileBytes
	}
	if changed("repo") {
		cfg.Engine.Repo = &f.repo
	}
	if changed("output") {
		cfg.UI.Output = &f.output
	}
	if changed("color") {
		cfg.UI.Color = &f.color
	}
	if changed("log-level") {
		cfg.UI.LogLevel = &f.logLevel
	}
	if changed("progress") {
		cfg.UI.Progress = &f.progress
	}
	if changed("no-progress") {
		v := !f.noProgress
		cfg.UI.Progress = &v
	}
	if changed("with-link") {
		cfg.UI.WithLink = &f.withLink
	}
	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, stdio IO, env map[string]string) error {
	logger := LoggerFromContext(cmd.Context())
	getenv := func(key string) string { return env[key] }

	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	flagCfg := flags.layer(cmd, args)

	repoHint := config.MergeEngine(config.EngineSettings{Repo: "."}, envCfg.Engine, flagCfg.Engine).Repo
	explicit := flags.configPath
	if strings.TrimSpace(explicit) == "" {
		explicit = getenv("TODOLINT_CONFIG")
	}
	cfgPath, where, err := config.Find(repoHint, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return fmt.Errorf("find config: %w", err)
	}
	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath, "source", where)
	}

	ui := config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, flagCfg.UI)
	ui, err = config.NormalizeUI(ui)
	if err != nil {
		return err
	}
	if fileCfg.UI.LogLevel != nil && envCfg.UI.LogLevel == nil && flagCfg.UI.LogLevel == nil {
		logger = newLogger(stdio, env, logging.ParseLevel(ui.LogLevel))
	}

	settings := config.MergeEngine(config.EngineSettingsFromOptions(engineopts.Defaults(".")), fileCfg.Engine, envCfg.Engine, flagCfg.Engine)
	var opts engine.Options
	settings.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return err
	}
	opts.Logger = logger
	opts.Progress = progressEnabled(ui.Progress)

	fields, err := output.ResolveFields(flags.fields, ui.WithLink)
	if err != nil {
		return err
	}
	textWidth := flags.textWidth
	if textWidth < 0 {
		return fmt.Errorf("--text-width must be >= 0")
	}
	mode, err := termcolor.ParseMode(ui.Color)
	if err != nil {
		return err
	}
	stdoutFile, _ := stdio.Stdout.(*os.File)
	palette := termcolor.Resolve(mode, stdoutFile, env)

	res, err := engine.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if ui.WithLink && len(res.Items) > 0 {
		linker, err := gitlink.Detect(cmd.Context(), gitlink.Options{
			RepoDir: opts.RepoDir,
			Remote:  getenv("TODOLINT_LINK_REMOTE"),
			Scheme:  getenv("TODOLINT_LINK_SCHEME"),
		})
		if err != nil {
			logger.Warn("links disabled", "error", err)
		} else {
			linker.Annotate(res.Items)
		}
	}
	for _, ie := range res.Errors {
		logger.Warn("file not linted", "file", ie.File, "stage", ie.Stage, "error", ie.Message)
	}
	logger.Debug("lint complete", "files", res.Files, "diagnostics", res.Total, "elapsed_ms", res.ElapsedMS)

	if err := output.Write(stdio.Stdout, ui.Output, res, output.Options{
		Fields: fields,
		Table:  output.TableOptions{Palette: palette, TextWidth: textWidth},
	}); err != nil {
		return fmt.Errorf("write %s: %w", ui.Output, err)
	}
	if res.Total > 0 {
		return ErrDiagnostics
	}
	return nil
}

func progressEnabled(setting *bool) bool {
	if setting == nil {
		return util.ShouldShowProgress(false, false)
	}
	return util.ShouldShowProgress(*setting, !*setting)
}
