package table

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ppiankov/tactica/internal/model"
)

func TestRead(t *testing.T) {
	src := "\ufeffID,Statement,likes\n" +
		"1,\"Hurry, limited time!\",10\n" +
		"2,,NA\n" +
		"3,\"Line one\nline two\",nan\n"

	tbl, err := Read(strings.NewReader(src), DefaultFormat())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !slices.Equal(tbl.Columns(), []string{"ID", "Statement", "likes"}) {
		t.Errorf("unexpected header %v (BOM should be stripped)", tbl.Columns())
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}

	if v := tbl.Get(0, "Statement"); v.Kind() != model.KindText || v.String() != "Hurry, limited time!" {
		t.Errorf("unexpected quoted cell %s %q", v.Kind(), v.String())
	}
	if !tbl.Get(1, "Statement").IsMissing() || !tbl.Get(1, "likes").IsMissing() {
		t.Error("expected empty and NA cells to be missing")
	}
	if got := tbl.Get(2, "Statement").String(); got != "Line one\nline two" {
		t.Errorf("expected multi-line cell, got %q", got)
	}
	if !tbl.Get(2, "likes").IsMissing() {
		t.Error("expected nan to be missing")
	}
}

func TestRead_Errors(t *testing.T) {
	if _, err := Read(strings.NewReader(""), DefaultFormat()); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Read(strings.NewReader("a,b\n1,2,3\n"), DefaultFormat()); err == nil {
		t.Error("expected error for ragged row")
	}
	if _, err := Read(strings.NewReader("a,a\n1,2\n"), DefaultFormat()); err == nil {
		t.Error("expected error for duplicate header")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	tbl, err := model.NewTable([]string{"ID", "Statement", "flag"})
	if err != nil {
		t.Fatal(err)
	}
	_ = tbl.Append(model.Text("1"), model.Text(`She said "hurry", twice`), model.Scalar("true"))
	_ = tbl.Append(model.Text("2"), model.Missing(), model.Scalar("false"))

	var buf bytes.Buffer
	if err := Write(&buf, tbl, DefaultFormat()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "ID,Statement,flag\n1,\"She said \"\"hurry\"\", twice\",true\n2,,false\n"
	if buf.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, buf.String())
	}

	back, err := Read(&buf, DefaultFormat())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if back.Get(0, "Statement").String() != `She said "hurry", twice` {
		t.Errorf("round trip changed cell: %q", back.Get(0, "Statement").String())
	}
}

func TestFiles_Semicolon(t *testing.T) {
	f, err := FormatFromConfig(model.CSVConfig{Delimiter: ";"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tbl, err := model.NewTable([]string{"ID", "Context"})
	if err != nil {
		t.Fatal(err)
	}
	_ = tbl.Append(model.Text("A"), model.Text("Hi; there"))

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteFile(path, tbl, f); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadFile(path, f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.Get(0, "Context").String() != "Hi; there" {
		t.Errorf("unexpected cell %q", back.Get(0, "Context").String())
	}
}

func TestFormatFromConfig_Invalid(t *testing.T) {
	for _, d := range []string{"", ",,", "\t\t"} {
		if _, err := FormatFromConfig(model.CSVConfig{Delimiter: d}); err == nil {
			t.Errorf("expected error for delimiter %q", d)
		}
	}
}
