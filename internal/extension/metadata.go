// Package extension discovers Agent OS extensions and installs them.
//
// An extension is a directory under <base>/extensions/ that carries an
// install.sh or install.py and, optionally, an extension.yaml describing its
// type, configuration schema and dependencies on other extensions.
package extension

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MetadataFileName is the optional descriptor inside an extension directory.
const MetadataFileName = "extension.yaml"

// Type declares which install modes an extension supports.
type Type string

const (
	// TypeGlobal extensions install only into the base Agent OS directory.
	TypeGlobal Type = "global"
	// TypeProject extensions install only into a project.
	TypeProject Type = "project"
	// TypeBoth extensions install in either mode.
	TypeBoth Type = "both"
)

// SchemaField describes one configuration key of an extension.
type SchemaField struct {
	Type     string `yaml:"type" validate:"omitempty,oneof=string boolean integer array object"`
	Default  any    `yaml:"default"`
	Required bool   `yaml:"required"`
	Enum     []any  `yaml:"enum"`
}

// Dependency names another extension that must be enabled.
type Dependency struct {
	Name     string `yaml:"name" validate:"required"`
	Optional bool   `yaml:"optional"`
}

// UnmarshalYAML accepts either a bare extension name or a mapping.
func (d *Dependency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Name = node.Value
		d.Optional = false
		return nil
	}
	type plain Dependency
	return node.Decode((*plain)(d))
}

// Dependencies groups the dependency lists of an extension.
type Dependencies struct {
	Extensions []Dependency `yaml:"extensions" validate:"dive"`
}

// Metadata is the parsed extension.yaml.
type Metadata struct {
	Name         string                 `yaml:"name"`
	Type         Type                   `yaml:"type" validate:"omitempty,oneof=global project both"`
	Description  string                 `yaml:"description"`
	Version      string                 `yaml:"version"`
	ConfigSchema map[string]SchemaField `yaml:"config_schema" validate:"dive"`
	Dependencies Dependencies           `yaml:"dependencies"`
}

var validate = validator.New()

// DefaultMetadata is used for extensions without an extension.yaml.
func DefaultMetadata(name string) *Metadata {
	return &Metadata{
		Name: name,
		Type: TypeBoth,
		ConfigSchema: map[string]SchemaField{
			"enabled": {Type: "boolean", Default: true},
			"install_dir": {
				Type:    "string",
				Default: "${AGENT_OS_HOME}/extensions/" + name,
			},
		},
	}
}

// LoadMetadata reads <dir>/extension.yaml, falling back to DefaultMetadata
// when the file does not exist. A missing name or type is filled in.
func LoadMetadata(dir string) (*Metadata, error) {
	name := filepath.Base(dir)
	path := filepath.Join(dir, MetadataFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultMetadata(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var md Metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validate.Struct(&md); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	if md.Name == "" {
		md.Name = name
	}
	if md.Type == "" {
		md.Type = TypeBoth
	}
	return &md, nil
}

// Supports reports whether the extension can be installed in mode.
func (m *Metadata) Supports(mode InstallMode) bool {
	switch m.Type {
	case TypeBoth, "":
		return true
	case TypeGlobal:
		return mode == InstallGlobal
	case TypeProject:
		return mode == InstallProject
	default:
		return false
	}
}
