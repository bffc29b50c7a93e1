package config

import "strings"

// resolve は nil でない最後の値を返します。すべて nil なら def のままです。
func resolve[T any](def T, values ...*T) T {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// resolveList は resolve のスライス版です。空リストのレイヤーは明示的なクリアとして扱います。
func resolveList(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			result = []string{}
			continue
		}
		result = cloneStrings(*v)
	}
	return result
}

func resolveTrimmed(def string, values ...*string) string {
	return strings.TrimSpace(resolve(def, values...))
}

// MergeEngine は base に layers を順に重ねます。後ろのレイヤーほど優先されます。
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Paths = resolveList(out.Paths, layer.Paths)
		out.Excludes = resolveList(out.Excludes, layer.Excludes)
		out.PathRegex = resolveList(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = resolve(out.ExcludeTypical, layer.ExcludeTypical)
		out.Langs = resolveList(out.Langs, layer.Langs)
		out.Rules = resolveList(out.Rules, layer.Rules)
		out.DisableRules = resolveList(out.DisableRules, layer.DisableRules)
		out.Jobs = resolve(out.Jobs, layer.Jobs)
		out.Repo = resolveTrimmed(out.Repo, layer.Repo)
		out.MaxFileBytes = resolve(out.MaxFileBytes, layer.MaxFileBytes)
	}
	return out
}

// MergeUI は出力設定を重ねます。Progress はどのレイヤーも指定しなければ nil のままです。
func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = resolveTrimmed(out.Output, layer.Output)
		out.Color = resolveTrimmed(out.Color, layer.Color)
		out.LogLevel = resolveTrimmed(out.LogLevel, layer.LogLevel)
		out.WithLink = resolve(out.WithLink, layer.WithLink)
		if layer.Progress != nil {
			v := *layer.Progress
			out.Progress = &v
		}
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
