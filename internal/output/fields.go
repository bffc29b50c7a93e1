package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/todolint/internal/engine"
)

type Field struct {
	Key    string
	Header string
}

// FieldSelection は table / csv / md に出す列の並びです。
type FieldSelection struct {
	Fields []Field
}

var fieldRegistry = map[string]string{
	"location": "LOCATION",
	"file":     "FILE",
	"line":     "LINE",
	"col":      "COL",
	"lang":     "LANG",
	"code":     "CODE",
	"message":  "MESSAGE",
	"text":     "TEXT",
	"url":      "URL",
}

var defaultFieldKeys = []string{"location", "code", "message", "text"}

// ResolveFields は "location,code" のようなカンマ区切りの列指定を解決します。
// 空なら既定の列で、withURL が真なら末尾に URL 列を足します。
func ResolveFields(raw string, withURL bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	keys := defaultFieldKeys
	if withURL {
		keys = append(append([]string(nil), defaultFieldKeys...), "url")
	}
	if raw != "" {
		keys = strings.Split(raw, ",")
	}
	sel := FieldSelection{Fields: make([]Field, 0, len(keys))}
	for _, part := range keys {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		header, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(it engine.Item, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = formatFieldValue(it, f.Key)
	}
	return out
}

func formatFieldValue(it engine.Item, key string) string {
	switch key {
	case "location":
		return fmt.Sprintf("%s:%d:%d", it.File, it.Line, it.Col)
	case "file":
		return it.File
	case "line":
		return strconv.Itoa(it.Line)
	case "col":
		return strconv.Itoa(it.Col)
	case "lang":
		return it.Lang
	case "code":
		return it.Code
	case "message":
		return it.Message
	case "text":
		return it.Text
	case "url":
		return it.URL
	default:
		return ""
	}
}
