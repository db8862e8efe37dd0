package explode

import (
	"errors"
	"slices"
	"testing"

	"github.com/ppiankov/tactica/internal/cache"
	"github.com/ppiankov/tactica/internal/model"
)

func TestCleanSentence(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		stripEmoji bool
		want       string
	}{
		{"empty", "", false, ""},
		{"whitespace only", "  \t\n ", false, ""},
		{"adds period", "hello world", false, "hello world."},
		{"keeps period", "Already done.", false, "Already done."},
		{"keeps exclamation", "Buy now!", false, "Buy now!"},
		{"keeps question", "Ready?", false, "Ready?"},
		{"collapses whitespace", "  lots   of\n\tspace  ", false, "lots of space."},
		{"curly apostrophes", "Don’t wait, it‘s ʼgoneʼ", false, "Don't wait, it's 'gone'."},
		{"nfc", "cafe\u0301 latte", false, "caf\u00e9 latte."},
		{"strip emoji", "Great! 🎉🎉 Buy now", true, "Great! Buy now."},
		{"keep emoji", "Great! 🎉 Buy now", false, "Great! 🎉 Buy now."},
		{"only emoji", "🔥🔥🔥", true, ""},
		{"emoji between words", "Love it 😍 today 👍", true, "Love it today."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSentence(tt.in, tt.stripEmoji); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestVisibleText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text stays", "plain text stays"},
		{"<p>Hurry!</p><p>Only today</p>", "Hurry! Only today"},
		{"Tom &amp; Jerry don&#39;t wait", "Tom & Jerry don't wait"},
		{"Buy<br>now<script>alert(1)</script>", "Buy now"},
		{"I <3 <b>this</b> deal", "I <3 this deal"},
	}

	for _, tt := range tests {
		if got := VisibleText(tt.in); got != tt.want {
			t.Errorf("VisibleText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
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

func newExploder(t *testing.T) *Exploder {
	t.Helper()
	seg, err := NewSegmenter(cache.NewMemoryCache(100))
	if err != nil {
		t.Fatalf("new segmenter: %v", err)
	}
	return New(seg)
}

func sentenceTexts(tbl *model.Table) []string {
	var out []string
	for i := 0; i < tbl.Len(); i++ {
		out = append(out, tbl.Get(i, SentenceColumn).String())
	}
	return out
}

func TestExplode_Example(t *testing.T) {
	in := newTable(t, []string{"ID", "Context"},
		[]model.Value{model.Text("A"), model.Text("Hi there. Buy now! Limited time only.")},
	)

	result, err := newExploder(t).Explode(in, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := result.Table

	if !slices.Equal(out.Columns(), []string{"ID", "Sentence_ID", "Context", "Sentence"}) {
		t.Errorf("unexpected columns %v", out.Columns())
	}
	if out.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Len())
	}

	want := []string{"Hi there.", "Buy now!", "Limited time only."}
	if got := sentenceTexts(out); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	for i := 0; i < out.Len(); i++ {
		if got := out.Get(i, IDColumn).String(); got != "A" {
			t.Errorf("row %d: expected ID A, got %s", i, got)
		}
		if got := out.Get(i, SentenceIDColumn).String(); got != string(rune('1'+i)) {
			t.Errorf("row %d: expected sentence index %d, got %s", i, i+1, got)
		}
		if got := out.Get(i, ContextColumn).String(); got != "Hi there. Buy now! Limited time only." {
			t.Errorf("row %d: expected original context, got %q", i, got)
		}
	}
	if result.SourceRows != 1 || result.Sentences != 3 || len(result.Empty) != 0 {
		t.Errorf("unexpected counts %+v", result)
	}
}

func TestExplode_Abbreviations(t *testing.T) {
	in := newTable(t, []string{"ID", "Context"},
		[]model.Value{model.Text("B"), model.Text("Mr. Smith loves this deal. Get yours today.")},
	)

	result, err := newExploder(t).Explode(in, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"Mr. Smith loves this deal.", "Get yours today."}
	if got := sentenceTexts(result.Table); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExplode_IndexScopedPerRow(t *testing.T) {
	in := newTable(t, []string{"ID", "Context", "likes"},
		[]model.Value{model.Text("A"), model.Text("One. Two."), model.Scalar("10")},
		[]model.Value{model.Text("B"), model.Missing(), model.Scalar("3")},
		[]model.Value{model.Text("C"), model.Text("   "), model.Scalar("0")},
		[]model.Value{model.Text("D"), model.Scalar("42"), model.Scalar("7")},
		[]model.Value{model.Text("E"), model.Text("Three"), model.Scalar("1")},
	)

	result, err := newExploder(t).Explode(in, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := result.Table

	var ids, idx []string
	for i := 0; i < out.Len(); i++ {
		ids = append(ids, out.Get(i, IDColumn).String())
		idx = append(idx, out.Get(i, SentenceIDColumn).String())
	}
	if !slices.Equal(ids, []string{"A", "A", "D", "E"}) {
		t.Errorf("unexpected IDs %v", ids)
	}
	if !slices.Equal(idx, []string{"1", "2", "1", "1"}) {
		t.Errorf("unexpected sentence indices %v", idx)
	}
	if got := sentenceTexts(out); !slices.Equal(got, []string{"One.", "Two.", "42.", "Three."}) {
		t.Errorf("unexpected sentences %v", got)
	}
	if !slices.Equal(result.Empty, []string{"B", "C"}) {
		t.Errorf("expected B and C reported empty, got %v", result.Empty)
	}
}

func TestExplode_StripOptions(t *testing.T) {
	in := newTable(t, []string{"ID", "Context"},
		[]model.Value{model.Text("A"), model.Text("<p>Don’t wait 🔥</p><p>Members only</p>")},
	)

	result, err := newExploder(t).Explode(in, Options{StripEmoji: true, StripMarkup: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"Don't wait Members only."}
	if got := sentenceTexts(result.Table); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := result.Table.Get(0, ContextColumn).String(); got != "<p>Don’t wait 🔥</p><p>Members only</p>" {
		t.Errorf("context should keep the original text, got %q", got)
	}
}

func TestExplode_MissingColumns(t *testing.T) {
	in := newTable(t, []string{"post", "caption"})

	_, err := newExploder(t).Explode(in, Options{})

	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if !slices.Equal(cfgErr.Missing, []string{"ID", "Context"}) {
		t.Errorf("expected ID and Context missing, got %v", cfgErr.Missing)
	}
}

func TestExplode_PackageLevel(t *testing.T) {
	in := newTable(t, []string{"ID", "Context"},
		[]model.Value{model.Text("A"), model.Text("First one. Second one")},
	)

	out, err := Explode(in, Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := sentenceTexts(out); !slices.Equal(got, []string{"First one.", "Second one."}) {
		t.Errorf("unexpected sentences %v", got)
	}
}

func TestSegmenter_Cache(t *testing.T) {
	c := cache.NewMemoryCache(10)
	seg, err := NewSegmenter(c)
	if err != nil {
		t.Fatalf("new segmenter: %v", err)
	}

	first := seg.Split("Hurry. Limited stock.")
	second := seg.Split("Hurry. Limited stock.")

	if !slices.Equal(first, second) {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
	if stats := seg.CacheStats(); stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %+v", stats)
	}

	if got := seg.Split(""); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
}
