package model

// CommentKind はコメントの種別（行コメント／ブロックコメント）を表します。
type CommentKind string

const (
	CommentKindLine  CommentKind = "line"
	CommentKindBlock CommentKind = "block"
)

// Span はソース上の範囲を行・桁・バイトオフセットで表します。
// 行・桁は 1 始まり、EndCol とバイトオフセットの終端は排他的です。
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Comment は 1 件のコメントです。Text にはコメント記号を含みませんが、
// Span は記号を含むコメント全体を指します。
type Comment struct {
	Kind CommentKind
	Text string
	Span Span
}

// NodeID はコメントが紐づくノードの識別子です。
type NodeID int

// NodeComments は 1 ノードに紐づくコメント列（ソース順）です。
type NodeComments struct {
	Node     NodeID
	Comments []Comment
}

// CommentTable はノードごとのコメント列をホストが生成した順に保持します。
type CommentTable []NodeComments

// Len はテーブル内のコメント総数を返します。
func (t CommentTable) Len() int {
	n := 0
	for _, nc := range t {
		n += len(nc.Comments)
	}
	return n
}

// Diagnostic はルールが報告する 1 件の指摘です。
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Span    Span   `json:"span"`
}

// Module はルールに渡される解析済みファイルです。
type Module struct {
	File  string
	Lang  string
	Lines int
}
