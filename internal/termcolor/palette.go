package termcolor

// HeaderStyle は表ヘッダ用のスタイルです。
func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// LocationStyle は file:line:col 列を控えめに表示します。
func LocationStyle() Style {
	return Style{Dim: true}
}

// CodeStyle はルールコード列のスタイルを背景と色数に合わせて返します。
// 明るい背景では暗めの橙、暗い背景では明るい黄色を使います。
func CodeStyle(scheme Scheme, profile Profile) Style {
	light := scheme == SchemeLight
	switch profile {
	case ProfileTrueColor:
		rgb := [3]uint8{255, 196, 0}
		if light {
			rgb = [3]uint8{154, 82, 0}
		}
		return Style{Bold: true, FGTrue: &rgb}
	case ProfileANSI256:
		idx := 220
		if light {
			idx = 130
		}
		return Style{Bold: true, FG256: &idx}
	default:
		color := 3
		if light {
			color = 1
		}
		return Style{Bold: true, FGBasic: &color}
	}
}

// TextStyle はコメント本文の強調です。タグの付いていない TODO を目立たせます。
func TextStyle(scheme Scheme) Style {
	color := 6
	if scheme == SchemeLight {
		color = 4
	}
	return Style{FGBasic: &color}
}
