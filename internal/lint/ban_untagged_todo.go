package lint

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/phyten/todolint/internal/model"
)

const (
	// BanUntaggedTodoCode は担当者・課題タグのない TODO を報告するルールのコードです。
	BanUntaggedTodoCode = "banUntaggedTodo"

	banUntaggedTodoMessage = "TODO should be tagged with (@username) or (#issue)"
)

// todo(#1234) / todo(@alice)
// RE2 の \s は ASCII の空白だけなので、unicode.IsSpace と同じ範囲をタグから除外します。
var todoTagRe = regexp.MustCompile(`todo\((#|@)[^\s\v\x{85}\p{Z}]+\)`)

// BanUntaggedTodo は (#issue) や (@username) が付いていない行コメントの TODO を報告します。
// 状態を持たないため、複数ファイルから同時に使えます。
type BanUntaggedTodo struct{}

// NewBanUntaggedTodo は新しいルールインスタンスを返します。
func NewBanUntaggedTodo() Rule {
	return BanUntaggedTodo{}
}

func (BanUntaggedTodo) Code() string { return BanUntaggedTodoCode }

// Evaluate は 1 件のコメントを判定し、違反であれば診断を返します。
//
// ブロックコメントは対象外です。本文を小文字化して先頭の空白を除いたあと
// "todo" で始まり、かつ todo(#…) / todo(@…) 形式のタグを含まない場合のみ違反です。
// 診断の範囲はコメント全体です。
func (BanUntaggedTodo) Evaluate(c model.Comment) (model.Diagnostic, bool) {
	if c.Kind != model.CommentKindLine {
		return model.Diagnostic{}, false
	}
	text := strings.TrimLeftFunc(strings.ToLower(c.Text), unicode.IsSpace)
	if !strings.HasPrefix(text, "todo") {
		return model.Diagnostic{}, false
	}
	if todoTagRe.MatchString(text) {
		return model.Diagnostic{}, false
	}
	return model.Diagnostic{
		Code:    BanUntaggedTodoCode,
		Message: banUntaggedTodoMessage,
		Span:    c.Span,
	}, true
}

// Diagnostics は leading、trailing の順にテーブル内の全コメントを評価し、
// 違反を遅延列として返します。何度 range しても同じ列になります。
func (r BanUntaggedTodo) Diagnostics(leading, trailing model.CommentTable) iter.Seq[model.Diagnostic] {
	return func(yield func(model.Diagnostic) bool) {
		for _, table := range [...]model.CommentTable{leading, trailing} {
			for _, nc := range table {
				for _, c := range nc.Comments {
					d, ok := r.Evaluate(c)
					if !ok {
						continue
					}
					if !yield(d) {
						return
					}
				}
			}
		}
	}
}

// LintModule は違反をその都度 ctx.AddDiagnostic へ転送します。
func (r BanUntaggedTodo) LintModule(ctx *Context, _ *model.Module) {
	for d := range r.Diagnostics(ctx.LeadingComments, ctx.TrailingComments) {
		ctx.AddDiagnostic(d.Span, d.Code, d.Message)
	}
}
