// Package collect はソースファイルからコメントを抜き出し、
// コード行（ノード）ごとの leading / trailing コメントテーブルを組み立てます。
//
// 構文解析は行わず、言語ごとのコメント記号と文字列区切りだけを見て走査します。
// ノードはコードを含む行で、NodeID はその行番号（1 始まり）です。
// ファイル末尾にコードが続かないコメントは、最終行の次の行番号を持つノードに紐づきます。
package collect

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/phyten/todolint/internal/model"
)

// ErrUnsupportedLanguage はコメント様式が未定義の言語に対して返されます。
var ErrUnsupportedLanguage = errors.New("unsupported language")

// File は 1 ファイル分の収集結果です。
type File struct {
	Module   model.Module
	Leading  model.CommentTable
	Trailing model.CommentTable
}

// Collect は data を path の言語として走査します。
// NUL を含むデータはバイナリとみなし、空の結果を返します。
func Collect(path string, data []byte) (File, error) {
	lang := NormalizeLangName(DetectLang(path, data))
	return CollectLang(path, lang, data)
}

// CollectLang は言語を明示して走査します。
func CollectLang(path, lang string, data []byte) (File, error) {
	out := File{Module: model.Module{File: path, Lang: lang}}
	style, ok := styleForLanguage(lang)
	if !ok {
		if lang == "" {
			return out, fmt.Errorf("%s: %w", path, ErrUnsupportedLanguage)
		}
		return out, fmt.Errorf("%s: %w: %s", path, ErrUnsupportedLanguage, lang)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return out, nil
	}
	s := newScanner(data, style)
	s.run()
	out.Module.Lines = len(s.lineOffsets)
	if len(data) == 0 {
		out.Module.Lines = 0
	}
	out.Leading = s.leading
	out.Trailing = s.trailing
	return out, nil
}

type scanner struct {
	data        []byte
	style       commentStyle
	lineOffsets []int

	line        int
	lineHasCode bool
	pending     []model.Comment
	lineTrail   []model.Comment

	leading  model.CommentTable
	trailing model.CommentTable
}

func newScanner(data []byte, style commentStyle) *scanner {
	return &scanner{
		data:        data,
		style:       style,
		lineOffsets: computeLineOffsets(data),
		line:        1,
	}
}

func (s *scanner) run() {
	data := s.data
	i := 0
	for i < len(data) {
		switch data[i] {
		case '\n':
			s.endLine()
			i++
			continue
		case ' ', '\t', '\r', '\f', '\v':
			i++
			continue
		}
		if next, ok := s.tryBlock(i); ok {
			i = next
			continue
		}
		if next, ok := s.tryLine(i); ok {
			i = next
			continue
		}
		if next, ok := s.tryString(i); ok {
			i = next
			continue
		}
		s.lineHasCode = true
		i++
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		s.endLine()
	}
	if len(s.pending) > 0 {
		appendComments(&s.leading, model.NodeID(len(s.lineOffsets)+1), s.pending)
		s.pending = nil
	}
}

func (s *scanner) tryBlock(i int) (int, bool) {
	for _, block := range s.style.block {
		if block.allowIndentedStart && s.lineHasCode {
			continue
		}
		if !bytes.HasPrefix(s.data[i:], []byte(block.start)) {
			continue
		}
		contentStart := i + len(block.start)
		contentEnd := len(s.data)
		end := len(s.data)
		if idx := bytes.Index(s.data[contentStart:], []byte(block.end)); idx >= 0 {
			contentEnd = contentStart + idx
			end = contentEnd + len(block.end)
		}
		if block.str {
			s.skipCode(i, end)
			return end, true
		}
		s.emit(model.Comment{
			Kind: model.CommentKindBlock,
			Text: string(s.data[contentStart:contentEnd]),
			Span: s.span(i, end),
		})
		s.skipComment(i, end)
		return end, true
	}
	return i, false
}

func (s *scanner) tryLine(i int) (int, bool) {
	for _, prefix := range s.style.linePrefixes {
		if !bytes.HasPrefix(s.data[i:], []byte(prefix)) {
			continue
		}
		eol := s.lineEnd(i)
		end := eol
		if end > i && s.data[end-1] == '\r' {
			end--
		}
		text := ""
		if start := i + len(prefix); start < end {
			text = string(s.data[start:end])
		}
		s.emit(model.Comment{
			Kind: model.CommentKindLine,
			Text: text,
			Span: s.span(i, end),
		})
		return eol, true
	}
	return i, false
}

func (s *scanner) tryString(i int) (int, bool) {
	for _, delim := range s.style.stringDelims {
		if !bytes.HasPrefix(s.data[i:], []byte(delim)) {
			continue
		}
		s.lineHasCode = true
		eol := s.lineEnd(i)
		closing := findClosingDelimiter(s.data[:eol], i+len(delim), delim)
		if closing < 0 {
			return eol, true
		}
		return closing + len(delim), true
	}
	return i, false
}

// emit はコメントを現在行の状態に応じて leading / trailing に振り分けます。
func (s *scanner) emit(c model.Comment) {
	if s.lineHasCode {
		s.lineTrail = append(s.lineTrail, c)
		return
	}
	s.pending = append(s.pending, c)
}

// skipCode は複数行にまたがる文字列リテラルを読み飛ばします。途中の行はすべてコード行です。
func (s *scanner) skipCode(from, to int) {
	s.lineHasCode = true
	for j := from; j < to; j++ {
		if s.data[j] == '\n' {
			s.endLine()
			s.lineHasCode = true
		}
	}
}

func (s *scanner) skipComment(from, to int) {
	for j := from; j < to; j++ {
		if s.data[j] == '\n' {
			s.endLine()
		}
	}
}

func (s *scanner) endLine() {
	if s.lineHasCode {
		node := model.NodeID(s.line)
		if len(s.pending) > 0 {
			appendComments(&s.leading, node, s.pending)
			s.pending = nil
		}
		if len(s.lineTrail) > 0 {
			appendComments(&s.trailing, node, s.lineTrail)
		}
	}
	s.lineTrail = nil
	s.lineHasCode = false
	s.line++
}

func (s *scanner) lineEnd(i int) int {
	if idx := bytes.IndexByte(s.data[i:], '\n'); idx >= 0 {
		return i + idx
	}
	return len(s.data)
}

func (s *scanner) span(start, end int) model.Span {
	line, col := lineColFromOffset(start, s.lineOffsets)
	endLine, endCol := lineColFromOffset(end, s.lineOffsets)
	return model.Span{
		StartLine: line,
		StartCol:  col,
		EndLine:   endLine,
		EndCol:    endCol,
		ByteStart: start,
		ByteEnd:   end,
	}
}

func appendComments(table *model.CommentTable, node model.NodeID, comments []model.Comment) {
	t := *table
	if n := len(t); n > 0 && t[n-1].Node == node {
		t[n-1].Comments = append(t[n-1].Comments, comments...)
		return
	}
	cs := make([]model.Comment, len(comments))
	copy(cs, comments)
	*table = append(t, model.NodeComments{Node: node, Comments: cs})
}

func findClosingDelimiter(line []byte, start int, delim string) int {
	if len(delim) == 0 || start > len(line) {
		return -1
	}
	if len(delim) == 1 {
		target := delim[0]
		for i := start; i < len(line); i++ {
			if line[i] != target {
				continue
			}
			if isEscaped(line, i) {
				continue
			}
			return i
		}
		return -1
	}
	idx := bytes.Index(line[start:], []byte(delim))
	if idx < 0 {
		return -1
	}
	return start + idx
}

func isEscaped(line []byte, pos int) bool {
	count := 0
	for i := pos - 1; i >= 0; i-- {
		if line[i] != '\\' {
			break
		}
		count++
	}
	return count%2 == 1
}

// lineColFromOffset はバイトオフセットを 1 始まりの行・桁に変換します。
func lineColFromOffset(offset int, lineOffsets []int) (line, col int) {
	idx := sort.Search(len(lineOffsets), func(i int) bool { return lineOffsets[i] > offset })
	if idx == 0 {
		return 1, offset + 1
	}
	return idx, offset - lineOffsets[idx-1] + 1
}

// computeLineOffsets は各行の先頭オフセットを返します。末尾の改行の後ろは行として数えません。
func computeLineOffsets(data []byte) []int {
	offsets := make([]int, 0, bytes.Count(data, []byte{'\n'})+1)
	offsets = append(offsets, 0)
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
