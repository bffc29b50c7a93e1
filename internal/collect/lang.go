package collect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// DetectLang はパスと先頭行（shebang）から言語名を推定します。判定できなければ "" を返します。
func DetectLang(path string, data []byte) string {
	if name := langByPath(path); name != "" {
		return name
	}
	return langByShebang(data)
}

// NormalizeLangName は別名を正規の言語名に揃えます。
func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// CanonicalLangs は言語名の一覧を正規化し、重複を取り除きます。
func CanonicalLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// Supported は言語にコメント様式が定義されているかを返します。
func Supported(lang string) bool {
	_, ok := styleForLanguage(NormalizeLangName(lang))
	return ok
}

func langByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[base]; ok {
		return lang
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	return extensionLanguages[ext]
}

func langByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	return shebangLanguages[interp]
}

var basenameLanguages = map[string]string{
	"makefile":       "make",
	"gnumakefile":    "make",
	"cmakelists.txt": "cmake",
	"dockerfile":     "dockerfile",
	"jenkinsfile":    "groovy",
	"vagrantfile":    "ruby",
	"gemfile":        "ruby",
	"rakefile":       "ruby",
	"justfile":       "make",
	"build":          "starlark",
	"workspace":      "starlark",
}

var extensionLanguages = map[string]string{
	".c":       "c",
	".h":       "c",
	".cc":      "cpp",
	".cpp":     "cpp",
	".cxx":     "cpp",
	".hh":      "cpp",
	".hpp":     "cpp",
	".mm":      "objective-cpp",
	".go":      "go",
	".js":      "javascript",
	".mjs":     "javascript",
	".cjs":     "javascript",
	".jsx":     "javascriptreact",
	".ts":      "typescript",
	".mts":     "typescript",
	".cts":     "typescript",
	".tsx":     "typescriptreact",
	".py":      "python",
	".pyi":     "python",
	".rb":      "ruby",
	".rake":    "ruby",
	".php":     "php",
	".cs":      "csharp",
	".java":    "java",
	".kt":      "kotlin",
	".kts":     "kotlin",
	".scala":   "scala",
	".groovy":  "groovy",
	".gradle":  "gradle",
	".swift":   "swift",
	".rs":      "rust",
	".dart":    "dart",
	".zig":     "zig",
	".ex":      "elixir",
	".exs":     "elixir",
	".hs":      "haskell",
	".sh":      "shell",
	".bash":    "shell",
	".zsh":     "shell",
	".ps1":     "powershell",
	".sql":     "sql",
	".lua":     "lua",
	".yaml":    "yaml",
	".yml":     "yaml",
	".toml":    "toml",
	".ini":     "ini",
	".proto":   "proto",
	".tf":      "terraform",
	".hcl":     "hcl",
	".css":     "css",
	".scss":    "scss",
	".less":    "less",
	".html":    "html",
	".htm":     "html",
	".xml":     "xml",
	".vue":     "vue",
	".svelte":  "svelte",
	".bzl":     "starlark",
	".star":    "starlark",
	".mk":      "make",
	".cmake":   "cmake",
	".jl":      "julia",
	".nim":     "nim",
	".r":       "r",
	".pl":      "perl",
	".pm":      "perl",
	".erl":     "erlang",
	".clj":     "clojure",
	".lisp":    "common-lisp",
	".rkt":     "racket",
	".rego":    "rego",
	".graphql": "graphql",
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"python3": "python",
	"node":    "javascript",
	"deno":    "typescript",
	"bun":     "javascript",
	"ruby":    "ruby",
	"perl":    "perl",
	"php":     "php",
	"bash":    "shell",
	"sh":      "shell",
	"zsh":     "shell",
	"pwsh":    "powershell",
	"lua":     "lua",
}

var langAliases = map[string]string{
	"c#":   "csharp",
	"c++":  "cpp",
	"js":   "javascript",
	"jsx":  "javascriptreact",
	"ts":   "typescript",
	"tsx":  "typescriptreact",
	"kt":   "kotlin",
	"rb":   "ruby",
	"py":   "python",
	"rs":   "rust",
	"bash": "shell",
	"sh":   "shell",
	"zsh":  "shell",
	"yml":  "yaml",
	"tf":   "terraform",
	"ps1":  "powershell",
}
