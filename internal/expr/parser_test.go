package expr_test

import (
	"errors"
	"testing"

	"github.com/portway/mapping-core/internal/expr"
)

func TestParse_Valid(t *testing.T) {
	valid := []string{
		`.`,
		`.key`,
		`.fields.summary`,
		`."48x48"`,
		`.avatarUrls."48x48"`,
		`.fields.subtasks | map(.key)`,
		`(.self | split("/rest/") | first) + "/browse/" + .key`,
		`"jiraIssue"`,
		`true`,
		`false`,
		`null`,
		`.labels[:3]`,
		`.labels[0]`,
		`.labels[-1]`,
		`.labels[1:]`,
		`.labels[1:3]`,
		`.a[0].b`,
		`.parts | join("-")`,
		`.name | split("")`,
		`.fields.labels | last`,
		`(.a + .b) | split(",")`,
	}
	for _, src := range valid {
		if _, err := expr.Parse(src); err != nil {
			t.Errorf("Parse(%q) failed: %v", src, err)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	malformed := []string{
		``,
		`.foo.`,
		`."unterminated`,
		`.foo[`,
		`.foo[]`,
		`.foo[:]`,
		`.foo +`,
		`| .foo`,
		`frobnicate(.foo)`, // unknown function must fail at load, not at runtime
		`split`,            // split requires an argument
		`first(.a)`,        // first takes none
		`.a | | .b`,
		`.a b`,
		`map(.key`,
	}
	for _, src := range malformed {
		_, err := expr.Parse(src)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
			continue
		}
		var perr *expr.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): error %v is not a *ParseError", src, err)
		}
	}
}

func TestParse_StringLiteral(t *testing.T) {
	e, err := expr.Parse(`"jiraIssue"`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s, ok := e.StringLiteral()
	if !ok || s != "jiraIssue" {
		t.Errorf("StringLiteral() = (%q, %v), want (jiraIssue, true)", s, ok)
	}

	e = expr.MustParse(`.key`)
	if _, ok := e.StringLiteral(); ok {
		t.Error("StringLiteral() on .key reported a constant")
	}
}

func TestMustParse_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on malformed input")
		}
	}()
	expr.MustParse(`.foo[`)
}
