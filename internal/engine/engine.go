package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/todolint/internal/collect"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/logging"
	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/util"
)

const maxWorkers = 64

// Run は指定されたオプションに従ってリポジトリを走査し、有効なルールの診断を返します。
//
// 各ファイルは独立したコメントテーブルと Context で検査され、ワーカー間で可変状態は共有しません。
// 読み込みに失敗したファイルは Result.Errors に集約され、処理は続行されます。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > maxWorkers {
		opts.Jobs = maxWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	rules, err := lint.DefaultRegistry().Select(opts.Rules, opts.DisableRules)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rules))
	for _, r := range rules {
		codes = append(codes, r.Code())
	}

	files, err := listFiles(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	logger.Debug("files listed", "count", len(files), "rules", strings.Join(codes, ","))

	type fileResult struct {
		items []Item
		err   *ItemError
	}

	jobs := make(chan string)
	results := make(chan fileResult)
	prog := util.NewProgress(len(files), opts.Progress)

	var wg sync.WaitGroup
	wg.Add(opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		go func() {
			defer wg.Done()
			for rel := range jobs {
				items, ierr := lintPath(rel, opts, rules, logger)
				prog.Advance()
				select {
				case <-ctx.Done():
					return
				case results <- fileResult{items: items, err: ierr}:
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rel := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- rel:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var items []Item
	var errs []ItemError
	for res := range results {
		items = append(items, res.items...)
		if res.err != nil {
			errs = append(errs, *res.err)
		}
	}
	prog.Done()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	sortItems(items)
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	logger.Debug("lint finished", "files", len(files), "diagnostics", len(items), "errors", len(errs))
	return &Result{
		Items:      items,
		Rules:      codes,
		Files:      len(files),
		Total:      len(items),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

func lintPath(rel string, opts Options, rules []lint.Rule, logger *slog.Logger) ([]Item, *ItemError) {
	lang := collect.NormalizeLangName(collect.DetectLang(rel, nil))
	if lang != "" && !langAllowed(lang, opts.Langs) {
		return nil, nil
	}
	full := filepath.Join(opts.RepoDir, filepath.FromSlash(rel))
	data, err := os.ReadFile(full)
	if err != nil {
		ie := newItemError(rel, "read", err)
		return nil, &ie
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		logger.Debug("file skipped", "file", rel, "reason", "max_file_bytes", "size", len(data))
		return nil, nil
	}
	if lang == "" {
		// 拡張子で決まらない場合は shebang を見る
		lang = collect.NormalizeLangName(collect.DetectLang(rel, data))
		if lang == "" || !langAllowed(lang, opts.Langs) {
			return nil, nil
		}
	}
	items, err := lintData(rel, lang, data, rules)
	if err != nil {
		if errors.Is(err, collect.ErrUnsupportedLanguage) {
			logger.Debug("file skipped", "file", rel, "reason", "unsupported language", "lang", lang)
			return nil, nil
		}
		ie := newItemError(rel, "collect", err)
		return nil, &ie
	}
	return items, nil
}

// LintFile は 1 ファイル分のデータを rules で検査します。言語はパスと内容から推定します。
func LintFile(path string, data []byte, rules []lint.Rule) ([]Item, error) {
	lang := collect.NormalizeLangName(collect.DetectLang(path, data))
	items, err := lintData(path, lang, data, rules)
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

func lintData(path, lang string, data []byte, rules []lint.Rule) ([]Item, error) {
	f, err := collect.CollectLang(path, lang, data)
	if err != nil {
		return nil, err
	}
	var items []Item
	sink := func(d model.Diagnostic) {
		items = append(items, Item{
			Code:    d.Code,
			Message: d.Message,
			File:    path,
			Lang:    lang,
			Line:    d.Span.StartLine,
			Col:     d.Span.StartCol,
			Span:    d.Span,
			Text:    sourceText(data, d.Span),
		})
	}
	for _, rule := range rules {
		ctx := lint.NewContext(path, f.Leading, f.Trailing, sink)
		rule.LintModule(ctx, &f.Module)
	}
	return items, nil
}

func sourceText(data []byte, span model.Span) string {
	if span.ByteStart < 0 || span.ByteEnd > len(data) || span.ByteStart >= span.ByteEnd {
		return ""
	}
	return strings.TrimSpace(string(data[span.ByteStart:span.ByteEnd]))
}

func langAllowed(lang string, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if collect.NormalizeLangName(a) == lang {
			return true
		}
	}
	return false
}

func sortItems(items []Item) {
	// stable order by file:line:col
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Code < b.Code
	})
}

func newItemError(file, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}
