// Package wire provides the insertion-ordered document structure that the
// version-aware encoder emits.
//
// Wire objects serialize deterministically: keys appear in the order they
// were set, so encoding the same schema twice yields byte-identical output,
// which downstream diffing and snapshotting rely on.
package wire

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Object is an insertion-ordered string-keyed document node. Setting an
// existing key replaces its value in place without changing its position.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores val under key. A replaced key keeps its original position.
func (o *Object) Set(key string, val any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *Object) Keys() []string {
	return o.keys
}

// MarshalJSON writes the object as JSON with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent returns the object as indented JSON, keys in insertion
// order.
func (o *Object) MarshalJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeValue writes any wire value as JSON. Plain maps get sorted keys so
// that output stays deterministic even for opaque collaborator documents;
// everything else round-trips through the JSON encoder.
func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeValue(buf, val.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("wire: failed to marshal value %v: %w", v, err)
		}
		buf.Write(data)
		return nil
	}
}

// MarshalYAML implements yaml.Marshaler, producing a mapping node whose keys
// keep insertion order.
func (o *Object) MarshalYAML() (any, error) {
	return o.yamlNode()
}

func (o *Object) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valNode, err := valueToNode(o.values[key])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// valueToNode converts a wire value into a yaml.Node, preserving wire
// object key order and sorting plain maps.
func valueToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		return val.yamlNode()

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			child, err := valueToNode(val[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, child)
		}
		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("wire: failed to encode value %v: %w", v, err)
		}
		return node, nil
	}
}
