package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/phyten/todolint/internal/engine"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func stringsPtr(values ...string) *[]string {
	copied := append([]string(nil), values...)
	return &copied
}

func TestMergeEnginePrecedence(t *testing.T) {
	base := EngineSettings{ExcludeTypical: true, Jobs: 2, Paths: []string{"base"}, Rules: []string{"banUntaggedTodo"}}

	fileCfg := EngineConfig{ExcludeTypical: boolPtr(false), Paths: stringsPtr("file"), Langs: stringsPtr("go")}
	envCfg := EngineConfig{Paths: stringsPtr("env"), Repo: strPtr("  /work  ")}
	flagCfg := EngineConfig{Paths: stringsPtr("flag"), Jobs: intPtr(8), Rules: stringsPtr()}

	merged := MergeEngine(base, fileCfg, envCfg, flagCfg)

	if !reflect.DeepEqual(merged.Paths, []string{"flag"}) {
		t.Fatalf("unexpected paths: %v", merged.Paths)
	}
	if merged.ExcludeTypical {
		t.Fatal("expected ExcludeTypical to be false from file layer")
	}
	if merged.Jobs != 8 {
		t.Fatalf("expected Jobs 8, got %d", merged.Jobs)
	}
	if !reflect.DeepEqual(merged.Langs, []string{"go"}) {
		t.Fatalf("unexpected langs: %v", merged.Langs)
	}
	if merged.Repo != "/work" {
		t.Fatalf("expected trimmed repo, got %q", merged.Repo)
	}
	if merged.Rules == nil || len(merged.Rules) != 0 {
		t.Fatalf("empty list layer should clear rules, got %#v", merged.Rules)
	}
}

func TestMergeUIPrecedence(t *testing.T) {
	base := DefaultUISettings()
	if base.Progress != nil {
		t.Fatal("default progress should be undecided")
	}

	fileCfg := UIConfig{Output: strPtr("json"), Progress: boolPtr(true)}
	envCfg := UIConfig{Color: strPtr("never"), LogLevel: strPtr("debug")}
	flagCfg := UIConfig{Output: strPtr(" csv "), Progress: boolPtr(false)}

	merged := MergeUI(base, fileCfg, envCfg, flagCfg)
	if merged.Output != "csv" {
		t.Fatalf("expected output csv, got %q", merged.Output)
	}
	if merged.Color != "never" || merged.LogLevel != "debug" {
		t.Fatalf("unexpected color/log level: %+v", merged)
	}
	if merged.Progress == nil || *merged.Progress {
		t.Fatalf("expected progress false from flag layer, got %v", merged.Progress)
	}

	empty := MergeUI(UISettings{}, UIConfig{Output: strPtr("")})
	if empty.Output != "table" || empty.Color != "auto" {
		t.Fatalf("blank values should fall back to defaults: %+v", empty)
	}
}

func TestSettingsRoundTripWithOptions(t *testing.T) {
	opts := engine.Options{RepoDir: "/repo", Paths: []string{"src"}, Jobs: 3, ExcludeTypical: true, MaxFileBytes: 10}
	settings := EngineSettingsFromOptions(opts)
	settings = MergeEngine(settings, EngineConfig{DisableRules: stringsPtr("banUntaggedTodo")})

	var out engine.Options
	settings.ApplyToOptions(&out)
	if out.RepoDir != "/repo" || out.Jobs != 3 || !out.ExcludeTypical || out.MaxFileBytes != 10 {
		t.Fatalf("unexpected options: %+v", out)
	}
	if !reflect.DeepEqual(out.Paths, []string{"src"}) || !reflect.DeepEqual(out.DisableRules, []string{"banUntaggedTodo"}) {
		t.Fatalf("unexpected lists: %+v", out)
	}
	settings.ApplyToOptions(nil)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"TODOLINT_PATH":            "src,cmd",
		"TODOLINT_PATH_REGEX":      ".*\\.go$",
		"TODOLINT_EXCLUDE":         "vendor,dist",
		"TODOLINT_EXCLUDE_TYPICAL": "yes",
		"TODOLINT_LANGS":           "go, ts",
		"TODOLINT_RULES":           "banUntaggedTodo",
		"TODOLINT_DISABLE":         "",
		"TODOLINT_JOBS":            "6",
		"TODOLINT_MAX_FILE_BYTES":  "4096",
		"TODOLINT_REPO":            "/tmp/repo",
		"TODOLINT_OUTPUT":          "json",
		"TODOLINT_COLOR":           "never",
		"TODOLINT_LOG_LEVEL":       "debug",
		"TODOLINT_NO_PROGRESS":     "1",
		"TODOLINT_WITH_LINK":       "on",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Engine.Paths == nil || !reflect.DeepEqual(*cfg.Engine.Paths, []string{"src", "cmd"}) {
		t.Fatalf("unexpected paths: %v", cfg.Engine.Paths)
	}
	if cfg.Engine.Langs == nil || !reflect.DeepEqual(*cfg.Engine.Langs, []string{"go", "ts"}) {
		t.Fatalf("unexpected langs: %v", cfg.Engine.Langs)
	}
	if cfg.Engine.DisableRules != nil {
		t.Fatalf("blank env should leave disable unset: %v", *cfg.Engine.DisableRules)
	}
	if cfg.Engine.ExcludeTypical == nil || !*cfg.Engine.ExcludeTypical {
		t.Fatal("expected exclude_typical true")
	}
	if ptrInt(cfg.Engine.Jobs) != 6 || ptrInt(cfg.Engine.MaxFileBytes) != 4096 {
		t.Fatalf("unexpected ints: jobs=%d max=%d", ptrInt(cfg.Engine.Jobs), ptrInt(cfg.Engine.MaxFileBytes))
	}
	if ptrString(cfg.Engine.Repo) != "/tmp/repo" {
		t.Fatalf("unexpected repo: %q", ptrString(cfg.Engine.Repo))
	}
	if ptrString(cfg.UI.Output) != "json" || ptrString(cfg.UI.Color) != "never" || ptrString(cfg.UI.LogLevel) != "debug" {
		t.Fatalf("unexpected ui: %+v", cfg.UI)
	}
	if cfg.UI.Progress == nil || *cfg.UI.Progress {
		t.Fatal("TODOLINT_NO_PROGRESS=1 should disable progress")
	}
	if cfg.UI.WithLink == nil || !*cfg.UI.WithLink {
		t.Fatal("TODOLINT_WITH_LINK=on should enable links")
	}
}

func TestFromEnvは不正な値をまとめて返す(t *testing.T) {
	env := map[string]string{
		"TODOLINT_JOBS":            "many",
		"TODOLINT_EXCLUDE_TYPICAL": "maybe",
	}
	_, err := FromEnv(func(key string) string { return env[key] })
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "TODOLINT_JOBS") || !strings.Contains(msg, "TODOLINT_EXCLUDE_TYPICAL") {
		t.Fatalf("both errors should be reported: %v", err)
	}

	if _, err := FromEnv(nil); err != nil {
		t.Fatalf("nil getenv should be accepted: %v", err)
	}
}

func TestAssignUINoProgress(t *testing.T) {
	var cfg UIConfig
	if err := assignUI(map[string]any{"no_progress": true}, &cfg); err != nil {
		t.Fatalf("assignUI returned error: %v", err)
	}
	if cfg.Progress == nil || *cfg.Progress {
		t.Fatal("expected Progress to be false when no_progress is true")
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		".yaml": "path:\n  - src\nexclude_typical: false\nmax-file-bytes: 2048\nrules: banUntaggedTodo\nui:\n  output: json\n  progress: true\n",
		".toml": "langs = [\"go\"]\njobs = 4\n[ui]\ncolor = \"always\"\nlog_level = \"warn\"\nlink = true\n",
		".json": "{\n  \"engine\": {\"exclude\": [\"vendor\"], \"disable\": [\"banUntaggedTodo\"]},\n  \"Format\": \"md\"\n}\n",
	}

	for ext, content := range cases {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "config"+ext)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			switch ext {
			case ".yaml":
				if cfg.Engine.Paths == nil || !reflect.DeepEqual(*cfg.Engine.Paths, []string{"src"}) {
					t.Fatalf("yaml path mismatch: %v", cfg.Engine.Paths)
				}
				if cfg.Engine.ExcludeTypical == nil || *cfg.Engine.ExcludeTypical {
					t.Fatal("yaml exclude_typical should be false")
				}
				if ptrInt(cfg.Engine.MaxFileBytes) != 2048 {
					t.Fatalf("yaml max_file_bytes mismatch: %d", ptrInt(cfg.Engine.MaxFileBytes))
				}
				if cfg.Engine.Rules == nil || !reflect.DeepEqual(*cfg.Engine.Rules, []string{"banUntaggedTodo"}) {
					t.Fatalf("yaml rules mismatch: %v", cfg.Engine.Rules)
				}
				if ptrString(cfg.UI.Output) != "json" {
					t.Fatalf("yaml output mismatch: %q", ptrString(cfg.UI.Output))
				}
				if cfg.UI.Progress == nil || !*cfg.UI.Progress {
					t.Fatal("yaml progress should be true")
				}
			case ".toml":
				if cfg.Engine.Langs == nil || !reflect.DeepEqual(*cfg.Engine.Langs, []string{"go"}) {
					t.Fatalf("toml langs mismatch: %v", cfg.Engine.Langs)
				}
				if ptrInt(cfg.Engine.Jobs) != 4 {
					t.Fatalf("toml jobs mismatch: %d", ptrInt(cfg.Engine.Jobs))
				}
				if ptrString(cfg.UI.Color) != "always" || ptrString(cfg.UI.LogLevel) != "warn" {
					t.Fatalf("toml ui mismatch: %+v", cfg.UI)
				}
				if cfg.UI.WithLink == nil || !*cfg.UI.WithLink {
					t.Fatal("toml link should be true")
				}
			case ".json":
				if cfg.Engine.Excludes == nil || !reflect.DeepEqual(*cfg.Engine.Excludes, []string{"vendor"}) {
					t.Fatalf("json exclude mismatch: %v", cfg.Engine.Excludes)
				}
				if cfg.Engine.DisableRules == nil || !reflect.DeepEqual(*cfg.Engine.DisableRules, []string{"banUntaggedTodo"}) {
					t.Fatalf("json disable mismatch: %v", cfg.Engine.DisableRules)
				}
				if ptrString(cfg.UI.Output) != "md" {
					t.Fatalf("json format mismatch: %q", ptrString(cfg.UI.Output))
				}
			}
		})
	}
}

func TestLoadUnknownKey(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"top.yaml":     "unknown: value\n",
		"engine.yaml":  "engine:\n  severity: error\n",
		"badtype.yaml": "jobs: [1, 2]\n",
		"config.ini":   "jobs=1\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if cfg, err := Load("  "); err != nil || cfg.Engine.Jobs != nil {
		t.Fatalf("blank path should yield empty config: %+v %v", cfg, err)
	}
}

func TestFindOrder(t *testing.T) {
	repoRoot := filepath.Join(t.TempDir(), "repo")
	if mkErr := os.MkdirAll(filepath.Join(repoRoot, "sub", "dir"), 0o755); mkErr != nil {
		t.Fatalf("mkdir: %v", mkErr)
	}
	repoConfig := filepath.Join(repoRoot, ".todolint.yaml")
	if writeErr := os.WriteFile(repoConfig, []byte("jobs: 1\n"), 0o644); writeErr != nil {
		t.Fatalf("write repo config: %v", writeErr)
	}
	path, where, err := Find(filepath.Join(repoRoot, "sub", "dir"), "", "", "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if path != repoConfig || where != "cwd-up" {
		t.Fatalf("unexpected result: path=%s where=%s", path, where)
	}

	explicitDir := t.TempDir()
	explicit := filepath.Join(explicitDir, "custom.toml")
	if writeErr := os.WriteFile(explicit, []byte("jobs = 2\n"), 0o644); writeErr != nil {
		t.Fatalf("write explicit: %v", writeErr)
	}
	path, where, err = Find(repoRoot, explicit, "", "")
	if err != nil {
		t.Fatalf("Find explicit failed: %v", err)
	}
	if path != explicit || where != "explicit" {
		t.Fatalf("expected explicit config, got path=%s where=%s", path, where)
	}
	if _, _, err := Find(repoRoot, explicitDir, "", ""); err == nil {
		t.Fatal("explicit directory should be rejected")
	}

	xdgHome := t.TempDir()
	if mkErr := os.MkdirAll(filepath.Join(xdgHome, "todolint"), 0o755); mkErr != nil {
		t.Fatalf("mkdir xdg: %v", mkErr)
	}
	xdgPath := filepath.Join(xdgHome, "todolint", "config.json")
	if writeErr := os.WriteFile(xdgPath, []byte("{}"), 0o644); writeErr != nil {
		t.Fatalf("write xdg: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", xdgHome, "")
	if err != nil {
		t.Fatalf("Find xdg failed: %v", err)
	}
	if path != xdgPath || where != "xdg" {
		t.Fatalf("expected xdg config, got path=%s where=%s", path, where)
	}

	homeDir := t.TempDir()
	homePath := filepath.Join(homeDir, ".todolint.toml")
	if writeErr := os.WriteFile(homePath, []byte("jobs = 3\n"), 0o644); writeErr != nil {
		t.Fatalf("write home: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", "", homeDir)
	if err != nil {
		t.Fatalf("Find home failed: %v", err)
	}
	if path != homePath || where != "home" {
		t.Fatalf("expected home config, got path=%s where=%s", path, where)
	}
}

func TestNormalizeUI(t *testing.T) {
	values := UISettings{Output: "Markdown", Color: "ALWAYS", LogLevel: "Warning"}
	normalized, err := NormalizeUI(values)
	if err != nil {
		t.Fatalf("NormalizeUI error: %v", err)
	}
	if normalized.Output != "md" || normalized.Color != "always" || normalized.LogLevel != "warn" {
		t.Fatalf("unexpected normalized values: %+v", normalized)
	}

	_, err = NormalizeUI(UISettings{Output: "xml", Color: "sometimes", LogLevel: "trace"})
	if err == nil {
		t.Fatal("expected error for invalid values")
	}
	for _, want := range []string{"--output", "color mode", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error should mention %q: %v", want, err)
		}
	}
}

func ptrString(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}

func ptrInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
