package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/todolint/internal/engine"
)

// WriteNDJSON streams items as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, items []engine.Item) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON は Result 全体を整形済み JSON で書き出します。診断が無くても items は [] になります。
func WriteJSON(w io.Writer, res *engine.Result) error {
	out := *res
	if out.Items == nil {
		out.Items = []engine.Item{}
	}
	if out.Rules == nil {
		out.Rules = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
