package explode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/tactica/internal/model"
)

// Mapping renames source columns to target columns
type Mapping map[string]string

// ParseMapping parses a JSON object of existing column -> new column
func ParseMapping(data []byte) (Mapping, error) {
	return parseMapping("inline", data)
}

// LoadMapping reads a JSON rename mapping from a file
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rename mapping: %w", err)
	}
	return parseMapping(path, data)
}

func parseMapping(source string, data []byte) (Mapping, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &model.ParseError{Source: source, Reason: "expected a JSON object of column -> column"}
	}

	var m Mapping
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, &model.ParseError{Source: source, Reason: "rename mapping must map strings to strings", Err: err}
	}
	for from, to := range m {
		if strings.TrimSpace(to) == "" {
			return nil, &model.ParseError{Source: source, Reason: fmt.Sprintf("column %q renamed to an empty name", from)}
		}
	}
	return m, nil
}

// ApplyRename renames columns per mapping and checks that the ID and
// Context columns exist afterwards. Unmentioned columns pass through and
// mapping keys absent from the table are ignored.
func ApplyRename(t *model.Table, m Mapping) (*model.Table, error) {
	out, err := t.Rename(m)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkRequired fails with the list of required columns t lacks
func checkRequired(t *model.Table) error {
	var missing []string
	for _, c := range []string{IDColumn, ContextColumn} {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &model.ConfigurationError{
		Missing: missing,
		Reason:  "available after renaming: " + strings.Join(t.Columns(), ", "),
	}
}
