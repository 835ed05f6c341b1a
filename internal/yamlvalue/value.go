// Package yamlvalue models a YAML document as a tree of tagged values whose
// mappings keep their key order, so a decode/encode cycle leaves keys where
// they were.
package yamlvalue

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// maxDepth bounds alias expansion and nesting.
const maxDepth = 512

// Node budget for decoding. Aliases may repeat a subtree, but the expanded
// tree may not grow past minNodes+nodesPerByte*len(text) nor maxNodes.
const (
	minNodes     = 4096
	nodesPerByte = 64
	maxNodes     = 1_000_000
)

// ErrTooManyNodes is returned when alias expansion would exceed the node budget.
var ErrTooManyNodes = errors.New("yamlvalue: document expands to too many nodes")

// Value is one node of a YAML tree. Only the fields matching Kind are set.
type Value struct {
	Kind Kind
	// Text is the scalar text of a Bool, Number or String.
	Text string
	// Tag is the short YAML tag a scalar was decoded with ("!!timestamp",
	// "!!int", ...). Empty for values built in code.
	Tag   string
	Items []Value
	Pairs []Pair
}

// Pair is one entry of a Mapping.
type Pair struct {
	Key   Value
	Value Value
}

// NewString returns a string scalar.
func NewString(s string) Value {
	return Value{Kind: String, Text: s}
}

// Lookup returns the value stored under key in a top-level mapping. Only
// string keys match; non-mapping values have no keys.
func (v Value) Lookup(key string) (Value, bool) {
	if i := v.index(key); i >= 0 {
		return v.Pairs[i].Value, true
	}
	return Value{}, false
}

// Set replaces the value stored under an existing key and reports whether
// the key was found. Set never adds keys.
func (v *Value) Set(key string, val Value) bool {
	i := v.index(key)
	if i < 0 {
		return false
	}
	v.Pairs[i].Value = val
	return true
}

func (v Value) index(key string) int {
	if v.Kind != Mapping {
		return -1
	}
	for i, p := range v.Pairs {
		if p.Key.Kind == String && p.Key.Text == key {
			return i
		}
	}
	return -1
}

// Parse decodes the first YAML document in text. Empty input is Null.
func Parse(text string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Value{}, err
	}
	if doc.Kind == 0 {
		return Value{Kind: Null}, nil
	}
	d := &decoder{budget: nodeBudget(len(text))}
	return d.fromNode(&doc, 0)
}

func nodeBudget(textLen int) int {
	return min(minNodes+nodesPerByte*textLen, maxNodes)
}

// decoder converts yaml.Node trees, counting every node it produces.
type decoder struct {
	budget int
}

func (d *decoder) fromNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, errors.New("yamlvalue: document nested too deeply")
	}
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		d.budget--
		if d.budget < 0 {
			return Value{}, ErrTooManyNodes
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{Kind: Null}, nil
		}
		return d.fromNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, fmt.Errorf("yamlvalue: unresolved alias %q", n.Value)
		}
		return d.fromNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		return fromScalar(n), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.fromNode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{Kind: Sequence, Items: items}, nil
	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return Value{}, errors.New("yamlvalue: mapping has a key without a value")
		}
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			k, err := d.fromNode(n.Content[i], depth+1)
			if err != nil {
				return Value{}, err
			}
			val, err := d.fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Value: val})
		}
		return Value{Kind: Mapping, Pairs: pairs}, nil
	default:
		return Value{}, fmt.Errorf("yamlvalue: unsupported node kind %d", n.Kind)
	}
}

func fromScalar(n *yaml.Node) Value {
	tag := n.ShortTag()
	switch tag {
	case "!!null":
		return Value{Kind: Null, Tag: tag}
	case "!!bool":
		return Value{Kind: Bool, Text: n.Value, Tag: tag}
	case "!!int", "!!float":
		return Value{Kind: Number, Text: n.Value, Tag: tag}
	default:
		// Timestamps, binary and custom tags are carried as strings.
		return Value{Kind: String, Text: n.Value, Tag: tag}
	}
}

// Marshal encodes v as a YAML document with two-space indentation.
func Marshal(v Value) (string, error) {
	node, err := v.toNode(0)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (v Value) toNode(depth int) (*yaml.Node, error) {
	if depth > maxDepth {
		return nil, errors.New("yamlvalue: value nested too deeply")
	}
	switch v.Kind {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}, nil
	case Bool, Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}, nil
	case String:
		tag := v.Tag
		if tag == "" {
			tag = "!!str"
		}
		if tag == "!!str" {
			// The encoder quotes a !!str whose text would resolve to another type.
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Text}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}, nil
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			c, err := item.toNode(depth + 1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.Pairs {
			k, err := p.Key.toNode(depth + 1)
			if err != nil {
				return nil, err
			}
			val, err := p.Value.toNode(depth + 1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, k, val)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("yamlvalue: cannot encode %s", v.Kind)
	}
}
