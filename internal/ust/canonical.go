package ust

import (
	"encoding/json"
	"fmt"
)

// Canonical form: the JSON wire shape consumed by callers that persist trees
// or move them across processes. Round-trips are lossless in topology, type
// tags, attribute keys/values, source-range presence, and language tags.
// Attribute numbers may change Go type across the wire (int becomes float64
// on the way back in); consumers compare values, not types.

// MarshalJSON emits the canonical node shape: children is always an array and
// attributes always an object, even when empty.
func (n *ASTNode) MarshalJSON() ([]byte, error) {
	type alias ASTNode
	cp := *n
	if cp.Children == nil {
		cp.Children = []*ASTNode{}
	}
	if cp.Attributes == nil {
		cp.Attributes = map[string]any{}
	}
	return json.Marshal((*alias)(&cp))
}

// ToCanonical serializes the tree to its canonical JSON form.
func (u *UniversalSyntaxTree) ToCanonical() ([]byte, error) {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ust: serialize tree: %w", err)
	}
	return data, nil
}

// FromCanonical deserializes a tree from its canonical JSON form.
func FromCanonical(data []byte) (*UniversalSyntaxTree, error) {
	var u UniversalSyntaxTree
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("ust: deserialize tree: %w", err)
	}
	if u.Root == nil {
		return nil, fmt.Errorf("ust: deserialize tree: missing root node")
	}
	if u.Version == "" {
		u.Version = FormatVersion
	}
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	return &u, nil
}
