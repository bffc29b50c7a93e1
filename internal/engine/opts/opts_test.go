package opts

import (
	"math"
	"reflect"
	"testing"

	"github.com/phyten/todolint/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "jobs", 1, 64)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "truncate", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("65", "jobs", 1, 64); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := engine.Options{
		Jobs:      8,
		Paths:     []string{" src ", ""},
		Langs:     []string{"TS", "ts", "py"},
		Rules:     []string{" banUntaggedTodo "},
		PathRegex: []string{`\.go$`},
	}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if o.RepoDir != "." {
		t.Fatalf("RepoDir default mismatch: %q", o.RepoDir)
	}
	if !reflect.DeepEqual(o.Paths, []string{"src"}) {
		t.Fatalf("Paths not trimmed: %v", o.Paths)
	}
	if !reflect.DeepEqual(o.Langs, []string{"typescript", "python"}) {
		t.Fatalf("Langs not canonicalized: %v", o.Langs)
	}
	if !reflect.DeepEqual(o.Rules, []string{"banUntaggedTodo"}) {
		t.Fatalf("Rules not trimmed: %v", o.Rules)
	}
	if len(o.PathRegexCompiled) != 1 {
		t.Fatalf("PathRegex not compiled: %v", o.PathRegexCompiled)
	}

	jobs := engine.Options{Jobs: 1024}
	if err := NormalizeAndValidate(&jobs); err == nil {
		t.Fatal("NormalizeAndValidate should fail for invalid jobs")
	}

	lang := engine.Options{Jobs: 1, Langs: []string{"brainfuck"}}
	if err := NormalizeAndValidate(&lang); err == nil {
		t.Fatal("NormalizeAndValidate should fail for unsupported lang")
	}

	rx := engine.Options{Jobs: 1, PathRegex: []string{"("}}
	if err := NormalizeAndValidate(&rx); err == nil {
		t.Fatal("NormalizeAndValidate should fail for invalid path regex")
	}

	glob := engine.Options{Jobs: 1, Excludes: []string{"src/[a"}}
	if err := NormalizeAndValidate(&glob); err == nil {
		t.Fatal("NormalizeAndValidate should fail for invalid exclude glob")
	}

	size := engine.Options{Jobs: 1, MaxFileBytes: -1}
	if err := NormalizeAndValidate(&size); err == nil {
		t.Fatal("NormalizeAndValidate should fail for negative max_file_bytes")
	}
}

func TestNormalizeOutput(t *testing.T) {
	cases := map[string]string{
		"":         "table",
		"TABLE":    "table",
		" json ":   "json",
		"ndjson":   "ndjson",
		"csv":      "csv",
		"markdown": "md",
		"md":       "md",
	}
	for input, want := range cases {
		got, err := NormalizeOutput(input)
		if err != nil {
			t.Fatalf("NormalizeOutput(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeOutput(%q)=%q want %q", input, got, want)
		}
	}
	if _, err := NormalizeOutput("xml"); err == nil {
		t.Fatal("NormalizeOutput should reject unknown formats")
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults("/repo")
	if d.RepoDir != "/repo" || !d.ExcludeTypical {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.Jobs < 1 || d.Jobs > maxJobs {
		t.Fatalf("jobs out of range: %d", d.Jobs)
	}
}

func TestSplitMulti(t *testing.T) {
	vals := []string{"a,b", " c ", "", ",d"}
	got := SplitMulti(vals)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SplitMulti mismatch at %d: got=%q want=%q", i, got[i], v)
		}
	}
}
