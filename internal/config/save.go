package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveStyle writes theme.styles.<name> into the config file, keeping the
// comments and formatting of every other section.
func SaveStyle(configPath, name string, style StyleConfig) error {
	name = strings.ToUpper(name)
	if err := ValidateTheme(ThemeConfig{Styles: map[string]StyleConfig{name: style}}); err != nil {
		return err
	}

	var value yaml.Node
	if err := value.Encode(style); err != nil {
		return fmt.Errorf("encoding style: %w", err)
	}
	return updateNode(configPath, []string{"theme", "styles", name}, &value)
}

// SaveStorageKey writes storage.key into the config file.
func SaveStorageKey(configPath, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	return updateNode(configPath, []string{"storage", "key"}, &yaml.Node{Kind: yaml.ScalarNode, Value: key})
}

// updateNode replaces (or creates) the value at path and rewrites the file
// atomically.
func updateNode(configPath string, path []string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	node := doc.Content[0]
	for i, key := range path {
		last := i == len(path)-1
		child := lookup(node, key)
		switch {
		case last && child != nil:
			*child = *value
		case last:
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
		case child == nil:
			child = &yaml.Node{Kind: yaml.MappingNode}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
		case child.Kind != yaml.MappingNode:
			// A scalar or commented-out placeholder; replace with a mapping.
			*child = yaml.Node{Kind: yaml.MappingNode}
		}
		node = child
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// lookup finds the value node for key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".draftpad.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
