package match

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/ppiankov/tactica/internal/dictionary"
	"github.com/ppiankov/tactica/internal/model"
)

func urgencyDict() *dictionary.Dictionary {
	return dictionary.New(dictionary.Category{
		Name:    "urgency_marketing",
		Phrases: []string{"limited time", "hurry"},
	})
}

func TestClassify_EndToEndExample(t *testing.T) {
	result := Classify(model.Text("Hurry, limited time only!"), urgencyDict())

	if !result.Detected("urgency_marketing") {
		t.Error("expected urgency_marketing to be detected")
	}
	for _, term := range []string{"hurry", "limited time"} {
		if !slices.Contains(result.Matched, term) {
			t.Errorf("expected matched terms to include %q, got %v", term, result.Matched)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	texts := []string{
		"Our EXCLUSIVE offer ends today, hurry!",
		"members only: early access for VIPs",
		"nothing to see here",
		"",
	}
	d := dictionary.Default()

	for _, text := range texts {
		lower := Classify(model.Text(text), d)
		upper := Classify(model.Text(strings.ToUpper(text)), d)
		if fmt.Sprint(lower) != fmt.Sprint(upper) {
			t.Errorf("case changed result for %q: %v vs %v", text, lower, upper)
		}
		again := Classify(model.Text(text), d)
		if fmt.Sprint(lower) != fmt.Sprint(again) {
			t.Errorf("non-deterministic result for %q", text)
		}
	}
}

func TestClassify_NonText(t *testing.T) {
	d := dictionary.Default()

	for _, v := range []model.Value{model.Missing(), model.Scalar("42"), model.Scalar("hurry")} {
		result := Classify(v, d)
		if len(result.Flags) != d.Len() {
			t.Errorf("expected %d flags, got %d", d.Len(), len(result.Flags))
		}
		if result.Any() {
			t.Errorf("expected no detection for %s cell, got %v", v.Kind(), result.Flags)
		}
		if len(result.Matched) != 0 {
			t.Errorf("expected no matched terms, got %v", result.Matched)
		}
	}
}

func TestClassify_SubstringNotWordBoundary(t *testing.T) {
	d := dictionary.New(dictionary.Category{Name: "exclusive", Phrases: []string{"vip", "exclusive offer"}})

	result := Classify(model.Text("Our customer service is great"), d)
	if result.Detected("exclusive") {
		t.Error("did not expect a match without the fragment")
	}

	result = Classify(model.Text("Our exclusive offers include a VIPer lounge"), d)
	if !result.Detected("exclusive") {
		t.Error("expected fragment matches to count")
	}
	if !slices.Equal(result.Matched, []string{"vip", "exclusive offer"}) {
		t.Errorf("expected matches in dictionary order, got %v", result.Matched)
	}
}

func TestClassify_MatchedAcrossCategories(t *testing.T) {
	d := dictionary.Default()

	result := Classify(model.Text("Limited access sale: limited time only"), d)

	if !result.Detected("urgency_marketing") || !result.Detected("exclusive_marketing") {
		t.Fatalf("expected both categories, got %v", result.Flags)
	}
	if !slices.Equal(result.Tactics(), []string{"urgency_marketing", "exclusive_marketing"}) {
		t.Errorf("unexpected tactics: %v", result.Tactics())
	}
	// "limited" appears in urgency; "limited access" in exclusive
	want := []string{"limited", "limited time", "limited access"}
	if !slices.Equal(result.Matched, want) {
		t.Errorf("expected %v, got %v", want, result.Matched)
	}
}

func TestClassify_EmptyDictionary(t *testing.T) {
	result := Classify(model.Text("hurry"), dictionary.New())
	if len(result.Flags) != 0 || len(result.Matched) != 0 || result.Any() {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func newTable(t *testing.T, columns []string, rows ...[]model.Value) *model.Table {
	t.Helper()
	tbl, err := model.NewTable(columns)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	for _, r := range rows {
		if err := tbl.Append(r...); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return tbl
}

func TestClassifyTable(t *testing.T) {
	in := newTable(t, []string{"ID", "Statement"},
		[]model.Value{model.Text("1"), model.Text("Hurry, limited time only!")},
		[]model.Value{model.Text("2"), model.Missing()},
		[]model.Value{model.Text("3"), model.Text("VIP members only")},
	)

	out, err := ClassifyTable(in, "Statement", dictionary.Default(), DefaultOptions())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantCols := []string{"ID", "Statement", "urgency_marketing", "exclusive_marketing", "matched_terms", "tactics"}
	if !slices.Equal(out.Columns(), wantCols) {
		t.Fatalf("expected columns %v, got %v", wantCols, out.Columns())
	}
	if out.Len() != in.Len() {
		t.Fatalf("expected %d rows, got %d", in.Len(), out.Len())
	}

	checks := []struct {
		row       int
		urgency   string
		exclusive string
		terms     string
		tactics   string
	}{
		{0, "true", "false", "limited; limited time; hurry", "urgency_marketing"},
		{1, "false", "false", "", ""},
		{2, "false", "true", "members only; vip", "exclusive_marketing"},
	}
	for _, c := range checks {
		if got := out.Get(c.row, "ID").String(); got != fmt.Sprint(c.row+1) {
			t.Errorf("row %d: order changed, got ID %s", c.row, got)
		}
		if got := out.Get(c.row, "urgency_marketing").String(); got != c.urgency {
			t.Errorf("row %d: urgency expected %s, got %s", c.row, c.urgency, got)
		}
		if got := out.Get(c.row, "exclusive_marketing").String(); got != c.exclusive {
			t.Errorf("row %d: exclusive expected %s, got %s", c.row, c.exclusive, got)
		}
		if got := out.Get(c.row, MatchedTermsColumn).String(); got != c.terms {
			t.Errorf("row %d: terms expected %q, got %q", c.row, c.terms, got)
		}
		if got := out.Get(c.row, TacticsColumn).String(); got != c.tactics {
			t.Errorf("row %d: tactics expected %q, got %q", c.row, c.tactics, got)
		}
	}

	// Input is untouched
	if slices.Contains(in.Columns(), "tactics") {
		t.Error("input table was mutated")
	}
}

func TestClassifyTable_IntFlagsAndOverwrite(t *testing.T) {
	in := newTable(t, []string{"Statement", "tactics"},
		[]model.Value{model.Text("hurry"), model.Text("stale")},
	)

	opts := DefaultOptions()
	opts.FlagFormat = FlagInt
	opts.Separator = "|"

	out, err := ClassifyTable(in, "Statement", urgencyDict(), opts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Equal(out.Columns(), []string{"Statement", "tactics", "urgency_marketing", "matched_terms"}) {
		t.Errorf("unexpected columns %v", out.Columns())
	}
	if got := out.Get(0, "urgency_marketing").String(); got != "1" {
		t.Errorf("expected 1, got %s", got)
	}
	if got := out.Get(0, "tactics").String(); got != "urgency_marketing" {
		t.Errorf("expected existing tactics column to be overwritten, got %q", got)
	}
}

func TestClassifyTable_MissingColumn(t *testing.T) {
	in := newTable(t, []string{"caption"}, []model.Value{model.Text("hurry")})

	_, err := ClassifyTable(in, "Statement", dictionary.Default(), DefaultOptions())

	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !slices.Equal(cfgErr.Missing, []string{"Statement"}) {
		t.Errorf("expected Statement reported missing, got %v", cfgErr.Missing)
	}
}

func TestClassifyTable_UnknownFlagFormat(t *testing.T) {
	in := newTable(t, []string{"Statement"})
	opts := DefaultOptions()
	opts.FlagFormat = "yes-no"

	_, err := ClassifyTable(in, "Statement", dictionary.Default(), opts)
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestClassifyTable_ParallelPreservesOrder(t *testing.T) {
	in := newTable(t, []string{"ID", "Statement"})
	for i := 0; i < 2500; i++ {
		text := "plain text"
		if i%3 == 0 {
			text = "hurry up"
		}
		if err := in.Append(model.Text(fmt.Sprint(i)), model.Text(text)); err != nil {
			t.Fatal(err)
		}
	}

	opts := DefaultOptions()
	opts.Workers = 8
	opts.ChunkSize = 64

	out, err := ClassifyTable(in, "Statement", urgencyDict(), opts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("expected %d rows, got %d", in.Len(), out.Len())
	}
	for i := 0; i < out.Len(); i++ {
		if out.Get(i, "ID").String() != fmt.Sprint(i) {
			t.Fatalf("row %d out of order", i)
		}
		want := "false"
		if i%3 == 0 {
			want = "true"
		}
		if got := out.Get(i, "urgency_marketing").String(); got != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestResolveTextColumn(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		requested string
		want      string
		wantErr   bool
	}{
		{"requested", []string{"a", "caption"}, "caption", "caption", false},
		{"requested missing", []string{"a"}, "caption", "", true},
		{"statement default", []string{"Context", "Statement"}, "", "Statement", false},
		{"context default", []string{"ID", "Context"}, "", "Context", false},
		{"first column", []string{"caption", "likes"}, "", "caption", false},
		{"no columns", nil, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTextColumn(newTable(t, tt.columns), tt.requested)
			if tt.wantErr {
				var cfgErr *model.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected ConfigurationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
