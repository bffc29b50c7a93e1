package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phyten/todolint/internal/model"
)

// ErrUnknownRule は登録されていないルールコードが指定された場合に返されます。
var ErrUnknownRule = errors.New("unknown rule")

// Rule はホストが多態的に扱う 1 つの lint ルールです。
type Rule interface {
	// Code はルール識別子を返します。診断のコードと有効/無効の設定に使われます。
	Code() string
	// LintModule は 1 ファイル分のモジュールを検査し、結果を ctx に報告します。
	LintModule(ctx *Context, mod *model.Module)
}

// Context は 1 ファイル・1 パス分のホスト文脈です。
type Context struct {
	File             string
	LeadingComments  model.CommentTable
	TrailingComments model.CommentTable

	sink func(model.Diagnostic)
}

// NewContext はコメントテーブルと報告先を束ねた Context を作ります。
// sink が nil の場合、報告は破棄されます。
func NewContext(file string, leading, trailing model.CommentTable, sink func(model.Diagnostic)) *Context {
	return &Context{
		File:             file,
		LeadingComments:  leading,
		TrailingComments: trailing,
		sink:             sink,
	}
}

// AddDiagnostic は診断を 1 件ホストへ渡します。
func (c *Context) AddDiagnostic(span model.Span, code, message string) {
	if c == nil || c.sink == nil {
		return
	}
	c.sink(model.Diagnostic{Code: code, Message: message, Span: span})
}

// Constructor は状態を持たない新しいルールを返します。
type Constructor func() Rule

// Registry はルールの構築関数を登録順に保持します。
type Registry struct {
	ctors []Constructor
	codes []string
}

// NewRegistry は与えられた構築関数からレジストリを作ります。
func NewRegistry(ctors ...Constructor) *Registry {
	r := &Registry{}
	for _, ctor := range ctors {
		r.ctors = append(r.ctors, ctor)
		r.codes = append(r.codes, ctor().Code())
	}
	return r
}

// DefaultRegistry は組み込みルールをすべて含むレジストリを返します。
func DefaultRegistry() *Registry {
	return NewRegistry(NewBanUntaggedTodo)
}

// Codes は登録済みルールコードを登録順で返します。
func (r *Registry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Select は enable（空なら全件）から disable を除いたルールを新しく構築して返します。
// コードは大文字小文字を区別せずに照合します。
func (r *Registry) Select(enable, disable []string) ([]Rule, error) {
	var errs []error
	enabled := make(map[string]bool, len(enable))
	for _, code := range enable {
		canon, ok := r.lookup(code)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, code))
			continue
		}
		enabled[canon] = true
	}
	disabled := make(map[string]bool, len(disable))
	for _, code := range disable {
		canon, ok := r.lookup(code)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, code))
			continue
		}
		disabled[canon] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	rules := make([]Rule, 0, len(r.ctors))
	for i, ctor := range r.ctors {
		code := r.codes[i]
		if len(enable) > 0 && !enabled[code] {
			continue
		}
		if disabled[code] {
			continue
		}
		rules = append(rules, ctor())
	}
	return rules, nil
}

func (r *Registry) lookup(code string) (string, bool) {
	want := strings.TrimSpace(code)
	for _, c := range r.codes {
		if strings.EqualFold(c, want) {
			return c, true
		}
	}
	return "", false
}
