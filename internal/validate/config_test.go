package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/tactica/internal/model"
)

func TestConfig_Defaults(t *testing.T) {
	if err := New().Config(model.DefaultConfig()); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestConfig_Invalid(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Classify.FlagFormat = "yesno"
	cfg.Concurrency.Workers = 0
	cfg.CSV.Delimiter = ",,"

	err := New().Config(cfg)
	if err == nil {
		t.Fatal("expected error")
	}

	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"classify.flag_format must be one of [bool int]",
		"concurrency.workers must be at least 1",
		"csv.delimiter must have length 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestConfig_EmptySeparator(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Classify.TermSeparator = ""

	err := New().Config(cfg)
	if err == nil || !strings.Contains(err.Error(), "classify.term_separator is required") {
		t.Errorf("expected required separator error, got %v", err)
	}
}

func TestConfig_EmptyRenameTarget(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Explode.Rename = map[string]string{"Response": " "}

	if err := New().Config(cfg); err == nil {
		t.Error("expected error for empty rename target")
	}
}

func TestConfig_Nil(t *testing.T) {
	if err := New().Config(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
