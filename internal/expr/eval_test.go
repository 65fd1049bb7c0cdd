package expr_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/portway/mapping-core/internal/expr"
)

func issueRecord() map[string]any {
	return map[string]any{
		"self": "https://x.atlassian.net/rest/api/2/issue/1",
		"key":  "ABC-1",
		"fields": map[string]any{
			"summary": "Fix bug",
			"status": map[string]any{
				"name": "In Progress",
			},
			"labels": []any{"infra", "bug", "urgent", "backend"},
			"subtasks": []any{
				map[string]any{"key": "ABC-2"},
				map[string]any{"key": "ABC-3"},
			},
		},
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input any
		want  any
	}{
		{"identity", `.`, "x", "x"},
		{"field", `.key`, issueRecord(), "ABC-1"},
		{"nested field", `.fields.summary`, issueRecord(), "Fix bug"},
		{"deep nested field", `.fields.status.name`, issueRecord(), "In Progress"},
		{"missing field", `.missing`, issueRecord(), nil},
		{"missing nested short-circuits", `.fields.parent.key`, issueRecord(), nil},
		{"field on null input", `.anything`, nil, nil},
		{"quoted field", `.avatarUrls."48x48"`, map[string]any{
			"avatarUrls": map[string]any{"48x48": "http://img"},
		}, "http://img"},
		{"string literal", `"jiraIssue"`, issueRecord(), "jiraIssue"},
		{"true literal", `true`, nil, true},
		{"false literal", `false`, nil, false},
		{"null literal", `null`, "anything", nil},
		{"index", `.fields.labels[0]`, issueRecord(), "infra"},
		{"negative index", `.fields.labels[-1]`, issueRecord(), "backend"},
		{"index out of range", `.fields.labels[99]`, issueRecord(), nil},
		{"slice prefix", `.fields.labels[:3]`, issueRecord(), []any{"infra", "bug", "urgent"}},
		{"slice middle", `.fields.labels[1:3]`, issueRecord(), []any{"bug", "urgent"}},
		{"slice open end", `.fields.labels[2:]`, issueRecord(), []any{"urgent", "backend"}},
		{"slice clamps", `.fields.labels[:99]`, issueRecord(), []any{"infra", "bug", "urgent", "backend"}},
		{"slice of null", `.missing[:3]`, issueRecord(), nil},
		{"split", `.self | split("/rest/")`, issueRecord(), []any{"https://x.atlassian.net", "api/2/issue/1"}},
		{"split first", `.self | split("/rest/") | first`, issueRecord(), "https://x.atlassian.net"},
		{"split last", `.self | split("/") | last`, issueRecord(), "1"},
		{"split of null", `.missing | split(",")`, issueRecord(), nil},
		{"split empty string", `. | split(",")`, "", []any{}},
		{"join", `.fields.labels[:2] | join(",")`, issueRecord(), "infra,bug"},
		{"join of null", `.missing | join(",")`, issueRecord(), nil},
		{"map", `.fields.subtasks | map(.key)`, issueRecord(), []any{"ABC-2", "ABC-3"}},
		{"map of null", `.missing | map(.key)`, issueRecord(), nil},
		{"concat strings", `.key + "-suffix"`, issueRecord(), "ABC-1-suffix"},
		{"concat null identity left", `.missing + .key`, issueRecord(), "ABC-1"},
		{"concat null identity right", `.key + .missing`, issueRecord(), "ABC-1"},
		{"concat arrays", `.fields.labels[:1] + .fields.labels[3:]`, issueRecord(), []any{"infra", "backend"}},
		{"browse url", `(.self | split("/rest/") | first) + "/browse/" + .key`, issueRecord(), "https://x.atlassian.net/browse/ABC-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := expr.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.src, err)
			}
			got, err := e.Eval(tt.input)
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tt.src, err)
			}
			if !equalValue(got, tt.want) {
				t.Errorf("Eval(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEval_TypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input any
	}{
		{"field of scalar", `.fields.summary.name`, issueRecord()},
		{"split non-string", `.fields.labels | split(",")`, issueRecord()},
		{"join non-array", `.key | join(",")`, issueRecord()},
		{"map non-array", `.key | map(.x)`, issueRecord()},
		{"index non-array", `.key[0]`, issueRecord()},
		{"slice non-array", `.fields[:2]`, issueRecord()},
		{"concat string and array", `.key + .fields.labels`, issueRecord()},
		{"concat booleans", `true + false`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := expr.MustParse(tt.src)
			_, err := e.Eval(tt.input)
			if err == nil {
				t.Fatalf("Eval(%q) succeeded, want type error", tt.src)
			}
			var terr *expr.TypeError
			if !errors.As(err, &terr) {
				t.Errorf("Eval(%q): error %v is not a *TypeError", tt.src, err)
			}
		})
	}
}

// Evaluating the same expression twice with identical input must yield
// identical output.
func TestEval_Deterministic(t *testing.T) {
	e := expr.MustParse(`(.self | split("/rest/") | first) + "/browse/" + .key`)
	rec := issueRecord()

	first, err := e.Eval(rec)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	second, err := e.Eval(rec)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation diverged: %#v vs %#v", first, second)
	}
}

// A compiled expression must be safe to evaluate from many goroutines.
func TestEval_Concurrent(t *testing.T) {
	e := expr.MustParse(`.fields.subtasks | map(.key) | join(",")`)
	rec := issueRecord()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := e.Eval(rec)
				if err != nil {
					t.Errorf("Eval failed: %v", err)
					return
				}
				if got != "ABC-2,ABC-3" {
					t.Errorf("Eval = %#v, want ABC-2,ABC-3", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// equalValue compares JSON-like values, treating nil and empty slices as
// distinct (jq does).
func equalValue(got, want any) bool {
	if want == nil || got == nil {
		return got == nil && want == nil
	}
	return reflect.DeepEqual(got, want)
}
