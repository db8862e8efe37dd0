// Package table reads and writes model tables as delimited text.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/tactica/internal/model"
)

const bom = "\ufeff"

// naTokens read as missing cells, matching what spreadsheet and dataframe
// exports write for empty values
var naTokens = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"null": true, "NULL": true, "None": true, "<NA>": true,
}

// Format describes the delimited layout
type Format struct {
	Delimiter rune
}

// DefaultFormat is comma-separated
func DefaultFormat() Format {
	return Format{Delimiter: ','}
}

// FormatFromConfig converts the configured delimiter
func FormatFromConfig(cfg model.CSVConfig) (Format, error) {
	r, size := utf8.DecodeRuneInString(cfg.Delimiter)
	if r == utf8.RuneError || size != len(cfg.Delimiter) {
		return Format{}, &model.ConfigurationError{Reason: fmt.Sprintf("csv delimiter must be a single character, got %q", cfg.Delimiter)}
	}
	return Format{Delimiter: r}, nil
}

// Read parses a header row and data rows into a table
func Read(r io.Reader, f Format) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = f.Delimiter
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	t, err := model.NewTable(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		values := make([]model.Value, len(record))
		for i, field := range record {
			if naTokens[strings.TrimSpace(field)] {
				values[i] = model.Missing()
			} else {
				values[i] = model.Text(field)
			}
		}
		if err := t.Append(values...); err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
	}

	return t, nil
}

// ReadFile reads a table from path
func ReadFile(path string, f Format) (*model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, f)
}

// Write writes the header and every row; missing cells are empty
func Write(w io.Writer, t *model.Table, f Format) error {
	writer := csv.NewWriter(w)
	writer.Comma = f.Delimiter

	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		for j := range record {
			record[j] = t.At(i, j).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteFile writes a table to path, or to stdout when path is "-"
func WriteFile(path string, t *model.Table, f Format) (err error) {
	if path == "-" {
		return Write(os.Stdout, t, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file: %w", closeErr)
		}
	}()

	return Write(file, t, f)
}
