package configfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// YAMLParser parses the whole document and looks the key up in the top-level mapping.
// Scalars are returned as written, so "version: 1.0" yields "1.0" rather than a float.
type YAMLParser struct{}

// Lookup implements the ConfigParser interface.
func (YAMLParser) Lookup(data []byte, key string) (string, bool, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, err
	}
	if len(doc.Content) == 0 {
		return "", false, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return "", false, nil
	}
	if root.Kind != yaml.MappingNode {
		return "", false, fmt.Errorf("top level must be a mapping (line %d)", root.Line)
	}

	found := lookupKey(root, key)
	if found == nil {
		return "", false, nil
	}
	if isNull(found) {
		return "", false, nil
	}
	if found.Kind != yaml.ScalarNode {
		return "", false, fmt.Errorf("key %q must hold a scalar value (line %d)", key, found.Line)
	}
	return found.Value, true, nil
}

// lookupKey finds key in mapping m. Explicit keys win over merged ones, later
// duplicates win over earlier ones, and among "<<" sources the first match wins.
func lookupKey(m *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	var merges []*yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		switch {
		case k.ShortTag() == "!!merge":
			merges = append(merges, deref(v))
		case k.Value == key:
			found = deref(v)
		}
	}
	if found != nil {
		return found
	}
	for _, src := range merges {
		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = src.Content
		}
		for _, s := range sources {
			if s = deref(s); s.Kind != yaml.MappingNode {
				continue
			}
			if v := lookupKey(s, key); v != nil {
				return v
			}
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
