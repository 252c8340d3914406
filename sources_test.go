package banksort

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeSources(t *testing.T) {
	src := `[
		{
			"dir": "statements/checking",
			"type": "bank",
			"name": "checking",
			"rules": [[[{"payee": "EMPLOYER"}], "income"], [[{"payee": ""}], "expense"]]
		},
		{"dir": "statements/visa", "type": "card", "name": "visa", "rules": []}
	]`

	sources, err := DecodeSources(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources", len(sources))
	}
	if sources[0].Name != "checking" || len(sources[0].Rules) != 2 {
		t.Errorf("first source = %+v", sources[0])
	}
	if sources[0].Rules[0].Outcome != Outcome("income") {
		t.Errorf("first rule outcome = %q", sources[0].Rules[0].Outcome)
	}
}

func TestLoadSourcesResolvesDirs(t *testing.T) {
	dir := t.TempDir()
	descriptor := filepath.Join(dir, "sources.json")
	content := `[
		{"dir": "statements/checking", "type": "bank", "name": "checking", "rules": []},
		{"dir": "/absolute/path", "type": "bank", "name": "abs", "rules": []}
	]`
	if err := os.WriteFile(descriptor, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(descriptor)
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(dir, "statements/checking"); sources[0].Dir != want {
		t.Errorf("relative dir = %q, want %q", sources[0].Dir, want)
	}
	if sources[1].Dir != "/absolute/path" {
		t.Errorf("absolute dir = %q, should be left alone", sources[1].Dir)
	}
}

func TestDecodeCategoryRules(t *testing.T) {
	src := `{
		"categories": ["groceries", "rent"],
		"rules": [[[{"payee": "WHOLE FOODS"}], "groceries"]]
	}`

	cr, err := DecodeCategoryRules(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(cr.Categories) != 2 || len(cr.Rules) != 1 {
		t.Errorf("rules = %+v", cr)
	}
	if cr.Default != Ask {
		t.Errorf("default = %q, want ask when unset", cr.Default)
	}

	if !cr.ValidCategory("rent") || cr.ValidCategory("nope") {
		t.Error("ValidCategory is wrong")
	}
}

func TestDecodeCategoryRulesExplicitDefault(t *testing.T) {
	src := `{"categories": ["misc"], "rules": [], "default": "misc"}`
	cr, err := DecodeCategoryRules(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if cr.Default != Outcome("misc") {
		t.Errorf("default = %q", cr.Default)
	}
}
