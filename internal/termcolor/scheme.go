package termcolor

import (
	"strconv"
	"strings"
)

// Scheme は端末の背景が明るいか暗いかです。
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme は COLORFGBG（"前景;背景" または "前景;その他;背景"）の背景色番号から判定します。
// 7 以上は明るい背景とみなします。判定できなければ TERM 名に light を含むかを見て、既定は暗い背景です。
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func colorfgbgBackground(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	for i := len(parts) - 1; i >= 1; i-- {
		field := strings.TrimSpace(parts[i])
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
