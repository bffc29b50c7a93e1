package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		rel     string
		want    bool
	}{
		{"**", "a/b/c.go", true},
		{"vendor/**", "vendor/", true},
		{"vendor/**", "vendor/x/y.go", true},
		{"vendor/**", "pkg/vendor/y.go", false},
		{"src", "src/main.go", true},
		{"src", "srcs/main.go", false},
		{"*.go", "pkg/util.go", true},
		{"*.go", "pkg/util.ts", false},
		{"pkg/*.go", "pkg/util.go", true},
		{"pkg/*.go", "pkg/sub/util.go", false},
		{"*.min.*", "web/app.min.js", true},
		{"**/*.go", "main.go", true},
		{"**/*.go", "a/b/c.go", true},
		{"**/*.go", "a/b/c.ts", false},
		{"src/**/*.ts", "src/a/b/x.ts", true},
		{"src/**/*.ts", "src/x.ts", true},
		{"src/**/*.ts", "lib/src/x.ts", false},
		{"**/testdata/**", "pkg/testdata/", true},
		{"**/testdata/**", "pkg/testdata/in.go", true},
		{"**/testdata/**", "pkg/data/in.go", false},
		{"pkg/{a,b}/*.go", "pkg/b/x.go", true},
	}
	for _, tc := range cases {
		if got := matchGlob(tc.pattern, tc.rel); got != tc.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tc.pattern, tc.rel, got, tc.want)
		}
	}
}

func TestValidateGlobs(t *testing.T) {
	t.Parallel()

	if err := ValidateGlobs([]string{"**/*.go", "vendor/**", " ", "./src"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateGlobs([]string{"src/[a"}); err == nil {
		t.Fatal("expected error for unterminated class")
	}
}

func TestCompilePathRegexTrimsAndValidates(t *testing.T) {
	t.Parallel()

	rx, err := CompilePathRegex([]string{"  ", "^src/", "(cmd|pkg)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rx) != 2 {
		t.Fatalf("expected 2 regexps, got %d", len(rx))
	}
	if !matchAny(rx, "src/main.go") || matchAny(rx, "docs/readme.md") {
		t.Fatal("matchAny mismatch")
	}
	if !matchAny(nil, "docs/readme.md") {
		t.Fatal("matchAny without regex should accept everything")
	}

	if _, err := CompilePathRegex([]string{"["}); err == nil {
		t.Fatal("expected compile error for invalid regexp")
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func TestListFilesは除外パターンとVCSディレクトリを飛ばす(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":              "package main\n",
		"src/app.ts":           "const a = 1;\n",
		"vendor/lib/lib.go":    "package lib\n",
		"node_modules/x/i.js":  "x\n",
		"web/app.min.js":       "x\n",
		".git/config":          "[core]\n",
		"docs/generated/a.md":  "# a\n",
		"docs/generated/b.txt": "b\n",
	})

	opts := Options{RepoDir: root, ExcludeTypical: true, Excludes: []string{"docs/generated"}}
	got, err := listFiles(context.Background(), opts)
	if err != nil {
		t.Fatalf("listFiles error: %v", err)
	}
	want := []string{"main.go", "src/app.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}

	opts = Options{RepoDir: root, Paths: []string{"src"}}
	got, err = listFiles(context.Background(), opts)
	if err != nil {
		t.Fatalf("listFiles error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"src/app.ts"}) {
		t.Fatalf("include filter mismatch: %v", got)
	}
}

func TestListFilesは二重アスタリスクで階層をまたぐ(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                 "package main\n",
		"pkg/a/b/c.go":            "package b\n",
		"pkg/a/b/c.ts":            "const c = 1;\n",
		"pkg/testdata/fixture.go": "package testdata\n",
	})

	opts := Options{RepoDir: root, Paths: []string{"**/*.go"}, Excludes: []string{"**/testdata/**"}}
	got, err := listFiles(context.Background(), opts)
	if err != nil {
		t.Fatalf("listFiles error: %v", err)
	}
	want := []string{"main.go", "pkg/a/b/c.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}
