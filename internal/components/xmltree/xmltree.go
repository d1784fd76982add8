// Package xmltree parses XML documents into a generic tree of named nodes
// and answers "find by tag name at any depth" queries over it.
package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Node is an element of a parsed document. Leaf elements carry their trimmed
// character data in Text, elements with children carry them in Children.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Parse reads an XML document and returns its root element.
func Parse(data []byte) (*Node, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse xml: document has no root element")
	}
	return convert(root), nil
}

func convert(el *etree.Element) *Node {
	n := &Node{
		Name: el.Tag,
		Text: strings.TrimSpace(el.Text()),
	}
	for _, child := range el.ChildElements() {
		n.Children = append(n.Children, convert(child))
	}
	return n
}

// FindAll returns every node named `name` in the subtree rooted at n
// (n included), in document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	n.walk(func(node *Node) bool {
		if node.Name == name {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first node named `name` in document order.
func (n *Node) Find(name string) (*Node, bool) {
	var found *Node
	n.walk(func(node *Node) bool {
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// Child returns the first direct child named `name`.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Value returns the first scalar value of the node: its own text if it has
// any, otherwise the first non-empty text found below it.
func (n *Node) Value() string {
	if n.Text != "" {
		return n.Text
	}
	for _, c := range n.Children {
		if v := c.Value(); v != "" {
			return v
		}
	}
	return ""
}

// walk visits nodes depth first, stopping as soon as visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}
