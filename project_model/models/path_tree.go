package models

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// TreeNode is either a Leaf or a *Directory.
type TreeNode interface {
	isTreeNode()
}

// Leaf is a file in the tree. Path is the full original path, not just the last segment.
type Leaf struct {
	Path string
}

// DirEntry is one named child of a Directory.
type DirEntry struct {
	Name string
	Node TreeNode
}

// Directory holds its children in first-seen order.
type Directory struct {
	Entries []DirEntry
}

func (Leaf) isTreeNode()       {}
func (*Directory) isTreeNode() {}

// Child looks up a direct child by segment name.
func (d *Directory) Child(name string) (TreeNode, bool) {
	for _, entry := range d.Entries {
		if entry.Name == name {
			return entry.Node, true
		}
	}
	return nil, false
}

// Names returns the child segment names in order.
func (d *Directory) Names() []string {
	names := make([]string, len(d.Entries))
	for i, entry := range d.Entries {
		names[i] = entry.Name
	}
	return names
}

// Flatten returns every leaf path below root, depth first in entry order.
func Flatten(root *Directory) []string {
	var paths []string
	var walk func(d *Directory)
	walk = func(d *Directory) {
		for _, entry := range d.Entries {
			switch node := entry.Node.(type) {
			case Leaf:
				paths = append(paths, node.Path)
			case *Directory:
				walk(node)
			}
		}
	}
	if root != nil {
		walk(root)
	}
	return paths
}

// MarshalJSON encodes a leaf as its path string, the same shape the navigation view consumes.
func (l Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Path)
}

// MarshalJSON encodes the directory as an object whose key order follows Entries.
func (d *Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(entry.Node)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l Leaf) MarshalYAML() (interface{}, error) {
	return l.Path, nil
}

func (d *Directory) MarshalYAML() (interface{}, error) {
	return directoryNode(d), nil
}

func directoryNode(d *Directory) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range d.Entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Name}
		var value *yaml.Node
		switch child := entry.Node.(type) {
		case Leaf:
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: child.Path}
		case *Directory:
			value = directoryNode(child)
		}
		node.Content = append(node.Content, key, value)
	}
	return node
}
