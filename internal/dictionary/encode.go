package dictionary

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the dictionary as an ordered JSON object
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range d.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		phrases := c.Phrases
		if phrases == nil {
			phrases = []string{}
		}
		list, err := json.Marshal(phrases)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the dictionary as an ordered YAML mapping
func (d *Dictionary) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range d.categories {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range c.Phrases {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			seq,
		)
	}
	return node, nil
}

// Indented returns the dictionary as indented JSON, the form shown to
// users for editing
func (d *Dictionary) Indented() ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
