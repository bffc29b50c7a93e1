package engine

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var typicalExcludePatterns = []string{
	"vendor/**",
	"node_modules/**",
	"dist/**",
	"build/**",
	"target/**",
	"*.min.*",
}

var alwaysSkipDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// listFiles は RepoDir 配下の対象ファイルをリポジトリ相対のスラッシュ区切りパスで返します。
func listFiles(ctx context.Context, opts Options) ([]string, error) {
	root := opts.RepoDir
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	includes := normalizePatterns(opts.Paths)
	excludes := normalizePatterns(opts.Excludes)
	if opts.ExcludeTypical {
		excludes = append(excludes, typicalExcludePatterns...)
	}

	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if _, skip := alwaysSkipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if matchAnyGlob(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(includes) > 0 && !matchAnyGlob(includes, rel) {
			return nil
		}
		if matchAnyGlob(excludes, rel) {
			return nil
		}
		if !matchAny(opts.PathRegexCompiled, rel) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func normalizePatterns(values []string) []string {
	out := make([]string, 0, len(values))
	for _, raw := range values {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		trimmed = strings.TrimPrefix(trimmed, "./")
		if trimmed == "" || trimmed == "." {
			trimmed = "**"
		}
		out = append(out, trimmed)
	}
	return out
}

func matchAnyGlob(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matchGlob(p, rel) {
			return true
		}
	}
	return false
}

// matchGlob は doublestar の glob（"**" はディレクトリをまたぐ）に加えて次を扱います。
//   - "dir/**" や "dir/"、"dir" は dir 自身と配下すべてに一致
//   - "/" を含まないパターンはベース名にも一致
//
// ディレクトリは末尾に "/" を付けて渡されます。
func matchGlob(pattern, rel string) bool {
	clean := strings.TrimSuffix(rel, "/")

	dir := strings.TrimSuffix(strings.TrimSuffix(pattern, "**"), "/")
	if dir != pattern || !strings.ContainsAny(pattern, "*?[{") {
		if dir == "" {
			return true
		}
		if ok, _ := doublestar.Match(dir, clean); ok {
			return true
		}
		if ok, _ := doublestar.Match(dir+"/**", clean); ok {
			return true
		}
	}
	if ok, _ := doublestar.Match(pattern, clean); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, _ := doublestar.Match(pattern, path.Base(clean)); ok {
			return true
		}
	}
	return false
}

// ValidateGlobs は不正な glob を含んでいればエラーを返します。
func ValidateGlobs(patterns []string) error {
	for _, p := range normalizePatterns(patterns) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("bad pattern %q", p)
		}
	}
	return nil
}

// CompilePathRegex はパス絞り込み用の正規表現をまとめてコンパイルします。
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func matchAny(rx []*regexp.Regexp, text string) bool {
	if len(rx) == 0 {
		return true
	}
	for _, r := range rx {
		if r.MatchString(text) {
			return true
		}
	}
	return false
}
