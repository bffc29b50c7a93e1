package termcolor

import (
	"strconv"
	"strings"
)

// Style は SGR 属性の組み合わせです。前景色は FGTrue > FG256 > FGBasic の順に 1 つだけ使います。
type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// Apply は enabled のときだけ text を s で装飾し、末尾でリセットします。
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := s.codes()
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func (s Style) codes() []string {
	var codes []string
	for _, attr := range []struct {
		on   bool
		code string
	}{{s.Bold, "1"}, {s.Dim, "2"}, {s.Underline, "4"}} {
		if attr.on {
			codes = append(codes, attr.code)
		}
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		codes = append(codes, "38;2;"+strconv.Itoa(int(rgb[0]))+";"+strconv.Itoa(int(rgb[1]))+";"+strconv.Itoa(int(rgb[2])))
	case s.FG256 != nil:
		codes = append(codes, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, "3"+strconv.Itoa(*s.FGBasic))
	}
	return codes
}
