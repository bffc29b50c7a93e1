package engine

import (
	"log/slog"
	"regexp"

	"github.com/phyten/todolint/internal/model"
)

// Item は 1 件の診断をファイル情報とともに表す
type Item struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	File    string     `json:"file"`
	Lang    string     `json:"lang,omitempty"`
	Line    int        `json:"line"`
	Col     int        `json:"col"`
	Span    model.Span `json:"span"`
	Text    string     `json:"text,omitempty"`
	URL     string     `json:"url,omitempty"`
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	RepoDir           string
	Paths             []string
	Excludes          []string
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	ExcludeTypical    bool
	Langs             []string
	Rules             []string
	DisableRules      []string
	Jobs              int
	MaxFileBytes      int
	Progress          bool
	Logger            *slog.Logger `json:"-"`
}

// Result は出力
type Result struct {
	Items      []Item      `json:"items"`
	Rules      []string    `json:"rules"`
	Files      int         `json:"files"`
	Total      int         `json:"total"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Errors     []ItemError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}
