package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned when an empty key path is provided.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key path into lower-case parts, the form
// keys take in config files. "extensions.hooks.enabled" becomes
// ["extensions", "hooks", "enabled"].
func ParseKeyPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyKeyPath
	}
	parts := strings.Split(strings.ToLower(path), ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key path %q", path)
		}
	}
	return parts, nil
}

// ParseValue infers the YAML type of a command-line value: booleans and
// integers keep their type, everything else (durations included) is a string.
func ParseValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

// SetNestedValue sets a value in a YAML node tree at the specified key path.
// Creates parent nodes if they don't exist.
func SetNestedValue(root *yaml.Node, keyPath []string, value any) error {
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.MappingNode})
	}
	var mapNode *yaml.Node
	switch {
	case root.Kind == yaml.DocumentNode && len(root.Content) > 0:
		mapNode = root.Content[0]
	case root.Kind == yaml.MappingNode:
		mapNode = root
	default:
		return fmt.Errorf("root node must be document or mapping, got %v", root.Kind)
	}
	if mapNode.Kind != yaml.MappingNode {
		// An empty document parses as a null scalar.
		mapNode.Kind = yaml.MappingNode
		mapNode.Tag = ""
		mapNode.Value = ""
		mapNode.Content = nil
	}
	return setValueInMap(mapNode, keyPath, value)
}

func setValueInMap(node *yaml.Node, keyPath []string, value any) error {
	if len(keyPath) == 0 {
		return nil
	}
	key, remaining := keyPath[0], keyPath[1:]

	keyIndex := findKeyIndex(node, key)
	if keyIndex == -1 {
		return createNestedKey(node, key, remaining, value)
	}

	valueNode := node.Content[keyIndex+1]
	if len(remaining) == 0 {
		setScalarValue(valueNode, value)
		return nil
	}
	if valueNode.Kind != yaml.MappingNode {
		valueNode.Kind = yaml.MappingNode
		valueNode.Tag = ""
		valueNode.Value = ""
		valueNode.Content = nil
	}
	return setValueInMap(valueNode, remaining, value)
}

// findKeyIndex returns the index of key in a mapping node's content, or -1.
func findKeyIndex(node *yaml.Node, key string) int {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func createNestedKey(node *yaml.Node, key string, remaining []string, value any) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	var valueNode *yaml.Node
	if len(remaining) == 0 {
		valueNode = &yaml.Node{}
		setScalarValue(valueNode, value)
	} else {
		valueNode = &yaml.Node{Kind: yaml.MappingNode}
		if err := setValueInMap(valueNode, remaining, value); err != nil {
			return err
		}
	}
	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}

func setScalarValue(node *yaml.Node, value any) {
	node.Kind = yaml.ScalarNode
	node.Content = nil
	node.Style = 0
	switch v := value.(type) {
	case bool:
		node.Tag = "!!bool"
		node.Value = strconv.FormatBool(v)
	case int:
		node.Tag = "!!int"
		node.Value = strconv.Itoa(v)
	case string:
		node.Tag = "!!str"
		node.Value = v
	default:
		node.Tag = ""
		node.Value = fmt.Sprint(v)
	}
}

// GetNestedValue returns the node at keyPath, or nil if it doesn't exist.
func GetNestedValue(root *yaml.Node, keyPath []string) *yaml.Node {
	if root == nil || len(keyPath) == 0 {
		return nil
	}
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	for _, key := range keyPath {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		i := findKeyIndex(node, key)
		if i == -1 {
			return nil
		}
		node = node.Content[i+1]
	}
	return node
}

// SetValue sets key to value in the YAML config file at path, creating the
// file if needed. Comments and unrelated keys are preserved.
func SetValue(path, key, value string) error {
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return fmt.Errorf("parsing key path: %w", err)
	}
	root, err := loadOrCreateYAML(path)
	if err != nil {
		return err
	}
	if err := SetNestedValue(root, keyPath, ParseValue(value)); err != nil {
		return fmt.Errorf("setting nested value: %w", err)
	}
	content, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := writeAtomically(path, content); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func loadOrCreateYAML(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &yaml.Node{
				Kind:    yaml.DocumentNode,
				Content: []*yaml.Node{{Kind: yaml.MappingNode}},
			}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	return &root, nil
}

// writeAtomically writes content through a temp file and rename, creating
// parent directories.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = ""
	return nil
}
