package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/todolint/internal/engine"
	"github.com/phyten/todolint/internal/termcolor"
	"github.com/phyten/todolint/internal/textutil"
)

const columnGap = "  "

// TableOptions は表形式の見た目を決めます。TextWidth が 0 以下なら TEXT 列を切り詰めません。
type TableOptions struct {
	Palette   termcolor.Palette
	TextWidth int
}

// WriteTable は表示幅を揃えた表を書き出します。複数行のコメントは最初の行だけを載せます。
func WriteTable(w io.Writer, items []engine.Item, sel FieldSelection, opts TableOptions) error {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, Headers(sel.Fields))
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i, f := range sel.Fields {
			if f.Key != "text" && f.Key != "message" {
				continue
			}
			row[i] = textutil.FirstLine(row[i])
			if f.Key == "text" && opts.TextWidth > 0 {
				row[i] = textutil.TruncateByWidth(row[i], opts.TextWidth, "…")
			}
		}
		rows = append(rows, row)
	}
	widths := textutil.ColumnWidths(rows)

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			// 最終列は右側を埋めない
			if i < len(row)-1 {
				cell = textutil.PadRight(cell, widths[i])
			}
			cells[i] = styleCell(cell, r == 0, sel.Fields[i].Key, opts.Palette)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, columnGap)); err != nil {
			return err
		}
	}
	return nil
}

func styleCell(cell string, header bool, key string, p termcolor.Palette) string {
	if !p.Enabled {
		return cell
	}
	if header {
		return termcolor.Apply(termcolor.HeaderStyle(), cell, true)
	}
	switch key {
	case "location", "file", "line", "col":
		return termcolor.Apply(termcolor.LocationStyle(), cell, true)
	case "code":
		return termcolor.Apply(termcolor.CodeStyle(p.Scheme, p.Profile), cell, true)
	case "text":
		return termcolor.Apply(termcolor.TextStyle(p.Scheme), cell, true)
	default:
		return cell
	}
}
