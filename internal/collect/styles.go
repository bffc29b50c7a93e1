package collect

type commentStyle struct {
	linePrefixes []string
	block        []blockPattern
	stringDelims []string
}

type blockPattern struct {
	start string
	end   string
	// 文字列リテラル（Go の raw string、Python の docstring など）はコメント扱いしない
	str                bool
	allowIndentedStart bool
}

var (
	styleC = commentStyle{
		linePrefixes: []string{"//"},
		block:        []blockPattern{{start: "/*", end: "*/"}},
		stringDelims: []string{"\""},
	}
	styleGo = commentStyle{
		linePrefixes: []string{"//"},
		block:        []blockPattern{{start: "/*", end: "*/"}, {start: "`", end: "`", str: true}},
		stringDelims: []string{"\"", "'"},
	}
	styleJS = commentStyle{
		linePrefixes: []string{"//"},
		block:        []blockPattern{{start: "/*", end: "*/"}, {start: "`", end: "`", str: true}},
		stringDelims: []string{"\"", "'"},
	}
	styleHash = commentStyle{
		linePrefixes: []string{"#"},
		stringDelims: []string{"\"", "'"},
	}
	styleRuby = commentStyle{
		linePrefixes: []string{"#"},
		block:        []blockPattern{{start: "=begin", end: "=end", allowIndentedStart: true}},
		stringDelims: []string{"\"", "'"},
	}
	stylePython = commentStyle{
		linePrefixes: []string{"#"},
		block:        []blockPattern{{start: "\"\"\"", end: "\"\"\"", str: true}, {start: "'''", end: "'''", str: true}},
		stringDelims: []string{"\"", "'"},
	}
	styleHTML = commentStyle{
		block: []blockPattern{{start: "<!--", end: "-->"}},
	}
	styleSQL = commentStyle{
		linePrefixes: []string{"--"},
		block:        []blockPattern{{start: "/*", end: "*/"}},
		stringDelims: []string{"'"},
	}
	styleLua = commentStyle{
		block:        []blockPattern{{start: "--[[", end: "]]"}},
		linePrefixes: []string{"--"},
		stringDelims: []string{"\"", "'"},
	}
	styleCSS = commentStyle{
		block:        []blockPattern{{start: "/*", end: "*/"}},
		stringDelims: []string{"\"", "'"},
	}
	styleSCSS = commentStyle{
		linePrefixes: []string{"//"},
		block:        []blockPattern{{start: "/*", end: "*/"}},
		stringDelims: []string{"\"", "'"},
	}
	styleIni = commentStyle{
		linePrefixes: []string{";", "#"},
	}
	styleHCL = commentStyle{
		linePrefixes: []string{"//", "#"},
		block:        []blockPattern{{start: "/*", end: "*/"}},
		stringDelims: []string{"\""},
	}
	styleLisp = commentStyle{
		linePrefixes: []string{";"},
		stringDelims: []string{"\""},
	}
	styleHaskell = commentStyle{
		linePrefixes: []string{"--"},
		block:        []blockPattern{{start: "{-", end: "-}"}},
		stringDelims: []string{"\""},
	}
	stylePowershell = commentStyle{
		linePrefixes: []string{"#"},
		block:        []blockPattern{{start: "<#", end: "#>"}},
		stringDelims: []string{"\"", "'"},
	}
	styleBash = commentStyle{
		linePrefixes: []string{"#"},
		stringDelims: []string{"\"", "'", "`"},
	}
	styleErlang = commentStyle{
		linePrefixes: []string{"%"},
		stringDelims: []string{"\""},
	}
)

var languageStyleMap = map[string]commentStyle{
	"c":               styleC,
	"cpp":             styleC,
	"objective-cpp":   styleC,
	"go":              styleGo,
	"java":            styleC,
	"csharp":          styleC,
	"scala":           styleC,
	"kotlin":          styleC,
	"swift":           styleC,
	"groovy":          styleC,
	"gradle":          styleC,
	"dart":            styleC,
	"rust":            styleC,
	"zig":             styleC,
	"proto":           styleC,
	"typescript":      styleJS,
	"typescriptreact": styleJS,
	"javascript":      styleJS,
	"javascriptreact": styleJS,
	"php":             styleJS,
	"hcl":             styleHCL,
	"terraform":       styleHCL,
	"python":          stylePython,
	"starlark":        stylePython,
	"ruby":            styleRuby,
	"perl":            styleHash,
	"r":               styleHash,
	"julia":           styleHash,
	"nim":             styleHash,
	"elixir":          styleHash,
	"rego":            styleHash,
	"graphql":         styleHash,
	"shell":           styleBash,
	"powershell":      stylePowershell,
	"yaml":            styleHash,
	"toml":            styleHash,
	"ini":             styleIni,
	"make":            styleHash,
	"cmake":           styleHash,
	"dockerfile":      styleHash,
	"html":            styleHTML,
	"xml":             styleHTML,
	"vue":             styleHTML,
	"svelte":          styleHTML,
	"css":             styleCSS,
	"scss":            styleSCSS,
	"less":            styleSCSS,
	"sql":             styleSQL,
	"lua":             styleLua,
	"haskell":         styleHaskell,
	"erlang":          styleErlang,
	"clojure":         styleLisp,
	"common-lisp":     styleLisp,
	"racket":          styleLisp,
}

func styleForLanguage(lang string) (commentStyle, bool) {
	cs, ok := languageStyleMap[lang]
	return cs, ok
}
