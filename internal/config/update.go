package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

type valueKind int

const (
	kindString valueKind = iota
	kindFloat
	kindInt
	kindBool
)

// settableKeys lists every leaf key 'config set' accepts and its type.
var settableKeys = map[string]valueKind{
	"refresh_rate":                        kindFloat,
	"max_history_points":                  kindInt,
	"temperature_thresholds.warning":      kindFloat,
	"temperature_thresholds.critical":     kindFloat,
	"display.show_gpu":                    kindBool,
	"display.show_network":                kindBool,
	"display.graph_height":                kindInt,
	"display.graph_length":                kindInt,
	"colors.normal":                       kindString,
	"colors.warning":                      kindString,
	"colors.critical":                     kindString,
	"filters.exclude_virtual_filesystems": kindBool,
	"filters.exclude_loop_devices":        kindBool,
	"filters.exclude_snap_mounts":         kindBool,
}

const fileHeader = "sysmon configuration. Run 'sysmon config show' to see the effective values."

// Keys returns every settable dotted key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes cfg to path, creating parent directories. Files ending in
// .json are written as JSON, everything else as YAML.
func Save(cfg *Config, path string) error {
	var data []byte
	var err error
	if isJSON(path) {
		data, err = marshalJSON(cfg)
	} else {
		data, err = marshalYAML(cfg)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return writeFile(path, data)
}

// Get returns the value at a dotted key such as "display.graph_height".
// A section key like "display" returns the whole section as a map.
func Get(cfg *Config, key string) (any, error) {
	tree, err := toMap(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to read config values", "")
	}

	var cur any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, unknownKey(key)
		}
		cur, ok = m[part]
		if !ok {
			return nil, unknownKey(key)
		}
	}
	return cur, nil
}

// SetValue sets a dotted key in the config file at path and writes it back.
// YAML files are edited in place so comments and key order survive. A missing
// file is created from the defaults. The edit is rejected, and the file left
// untouched, if the result does not validate.
func SetValue(path, key, raw string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return unknownKey(key)
	}

	value, err := normalize(kind, raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid value for %s: %s", key, raw), "")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data, err = yaml.Marshal(DefaultConfig())
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check file permissions on "+path)
	}

	// JSON is a subset of YAML, so both formats load into a node tree.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Fix the syntax in "+path+" or recreate it with 'sysmon config init --force'")
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig,
			"Config file is not a mapping of keys to values",
			"Recreate it with 'sysmon config init --force'")
	}

	setNode(root.Content[0], strings.Split(key, "."), kind, value)

	out, err := encodeNode(&root)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(out, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Config no longer parses after the change", "")
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	if isJSON(path) {
		return Save(cfg, path)
	}
	return writeFile(path, out)
}

// setNode walks the mapping along parts, creating missing sections, and
// sets the final key to value.
func setNode(mapping *yaml.Node, parts []string, kind valueKind, value string) {
	for _, part := range parts[:len(parts)-1] {
		next := findMapValue(mapping, part)
		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: part}, next)
		} else if next.Kind != yaml.MappingNode {
			*next = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		mapping = next
	}

	leaf := parts[len(parts)-1]
	tag := ""
	if kind == kindString {
		tag = "!!str"
	}

	if existing := findMapValue(mapping, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = tag
		existing.Value = value
		existing.Style = 0
		existing.Content = nil
		return
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: leaf},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// normalize checks raw against the key's type and returns the text to store.
func normalize(kind valueKind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("expected a number")
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("expected a whole number")
		}
		return strconv.Itoa(n), nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("expected true or false")
		}
		return strconv.FormatBool(b), nil
	default:
		if raw == "" {
			return "", fmt.Errorf("value can't be empty")
		}
		return raw, nil
	}
}

func unknownKey(key string) error {
	return errors.New(errors.ErrConfig,
		"Unknown config key: "+key,
		"Valid keys: "+strings.Join(Keys(), ", "))
}

func marshalYAML(cfg *Config) ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, err
	}
	doc.HeadComment = fileHeader
	return encodeNode(&doc)
}

func marshalJSON(cfg *Config) ([]byte, error) {
	tree, err := toMap(cfg)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeNode(node *yaml.Node) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// toMap round-trips cfg through YAML so keys match the file layout.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	tree := map[string]any{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
