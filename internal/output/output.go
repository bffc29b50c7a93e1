// Package output は lint 結果を table / json / ndjson / csv / md で書き出します。
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/phyten/todolint/internal/engine"
)

// ErrUnknownFormat は対応していない出力形式が指定された場合に返されます。
var ErrUnknownFormat = errors.New("unknown output format")

type Options struct {
	Fields FieldSelection
	Table  TableOptions
}

// Write は format に応じて res を w に書き出します。format は正規化済み（md など）を想定します。
func Write(w io.Writer, format string, res *engine.Result, opts Options) error {
	if res == nil {
		res = &engine.Result{}
	}
	fields := opts.Fields
	if len(fields.Fields) == 0 {
		def, err := ResolveFields("", false)
		if err != nil {
			return err
		}
		fields = def
	}
	switch format {
	case "", "table":
		return WriteTable(w, res.Items, fields, opts.Table)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items)
	case "csv":
		return WriteCSV(w, res.Items, fields)
	case "md":
		return WriteMarkdownTable(w, res.Items, fields)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
