package dictionary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/tactica/internal/model"
	"gopkg.in/yaml.v3"
)

const inlineSource = "inline"

// ParseJSON parses a JSON object mapping category name to a list of phrases.
// Category order follows the document.
func ParseJSON(data []byte) (*Dictionary, error) {
	return parseJSON(inlineSource, data)
}

// ParseYAML parses a YAML mapping of category name to a sequence of phrases
func ParseYAML(data []byte) (*Dictionary, error) {
	return parseYAML(inlineSource, data)
}

// ParseLines parses one phrase per line into a single-category dictionary.
// Blank lines and comment lines ("#" alone or "# " followed by text) are
// skipped; "#limitedtime" is a hashtag phrase.
func ParseLines(category string, text string) (*Dictionary, error) {
	return parseLines(inlineSource, category, text)
}

// Load reads a dictionary file, picking the format from the extension:
// .json, .yaml/.yml, otherwise a line list named after the file stem
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return parseJSON(path, data)
	case ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return parseLines(path, stem, string(data))
	}
}

// LoadCategory reads a newline-delimited phrase file for one category
func LoadCategory(category string, path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category %s: %w", category, err)
	}
	return parseLines(path, category, string(data))
}

func parseJSON(source string, data []byte) (*Dictionary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, &model.ParseError{Source: source, Reason: "invalid JSON", Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &model.ParseError{Source: source, Reason: "expected a JSON object of category -> list of phrases"}
	}

	var categories []Category
	seen := make(map[string]bool)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &model.ParseError{Source: source, Reason: "invalid JSON", Err: err}
		}
		name, _ := tok.(string)
		if err := checkName(name, seen); err != nil {
			return nil, &model.ParseError{Source: source, Reason: err.Error()}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &model.ParseError{Source: source, Reason: "invalid JSON", Err: err}
		}
		var phrases []string
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &phrases) != nil {
			return nil, &model.ParseError{Source: source, Reason: fmt.Sprintf("category %q must be a list of strings", name)}
		}

		categories = append(categories, Category{Name: name, Phrases: phrases})
	}

	// Closing brace, then nothing else
	if _, err := dec.Token(); err != nil {
		return nil, &model.ParseError{Source: source, Reason: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &model.ParseError{Source: source, Reason: "unexpected data after JSON object"}
	}

	return New(categories...), nil
}

func parseYAML(source string, data []byte) (*Dictionary, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &model.ParseError{Source: source, Reason: "invalid YAML", Err: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &model.ParseError{Source: source, Reason: "empty YAML document"}
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &model.ParseError{Source: source, Reason: "expected a YAML mapping of category -> list of phrases"}
	}

	var categories []Category
	seen := make(map[string]bool)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &model.ParseError{Source: source, Reason: fmt.Sprintf("line %d: category name must be a string", key.Line)}
		}
		if err := checkName(key.Value, seen); err != nil {
			return nil, &model.ParseError{Source: source, Reason: err.Error()}
		}
		if val.Kind != yaml.SequenceNode {
			return nil, &model.ParseError{Source: source, Reason: fmt.Sprintf("category %q must be a list of strings", key.Value)}
		}

		phrases := make([]string, 0, len(val.Content))
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return nil, &model.ParseError{Source: source, Reason: fmt.Sprintf("category %q: line %d is not a phrase", key.Value, item.Line)}
			}
			phrases = append(phrases, item.Value)
		}

		categories = append(categories, Category{Name: key.Value, Phrases: phrases})
	}

	return New(categories...), nil
}

func parseLines(source string, category string, text string) (*Dictionary, error) {
	if strings.TrimSpace(category) == "" {
		return nil, &model.ParseError{Source: source, Reason: "category name is empty"}
	}

	var phrases []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isComment(line) {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &model.ParseError{Source: source, Reason: "read phrases", Err: err}
	}

	return New(Category{Name: category, Phrases: phrases}), nil
}

func checkName(name string, seen map[string]bool) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("category name is empty")
	}
	if seen[name] {
		return fmt.Errorf("duplicate category %q", name)
	}
	seen[name] = true
	return nil
}

// isComment matches "#" alone or "#" followed by whitespace
func isComment(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "#\t")
}
