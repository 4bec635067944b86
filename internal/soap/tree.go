// Package soap turns a SOAP reply into a navigable element tree.
//
// Element names keep their namespace prefix exactly as written on the wire
// ("soap:Envelope", "diffgr:diffgram"), so reply paths can be expressed the
// way they appear in provider documentation.
package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Node is one XML element.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Parse decodes body into a tree rooted at a synthetic document node whose
// children are the top-level elements.
func Parse(body []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimSpace(body)))
	dec.Strict = true

	root := &Node{}
	stack := []*Node{root}
	var text []strings.Builder
	text = append(text, strings.Builder{})

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: qualifiedName(t.Name)}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
			text = append(text, strings.Builder{})
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, errors.New("unbalanced end element " + qualifiedName(t.Name))
			}
			node := stack[len(stack)-1]
			if name := qualifiedName(t.Name); name != node.Name {
				return nil, errors.New("element " + node.Name + " closed by " + name)
			}
			node.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		case xml.CharData:
			text[len(text)-1].Write(t)
		}
	}

	if len(stack) != 1 {
		return nil, io.ErrUnexpectedEOF
	}
	if len(root.Children) == 0 {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Lookup walks a dot-separated chain of element names from n and returns the
// element at the end of it, or nil when any segment is missing.
func (n *Node) Lookup(path string) *Node {
	current := n
	for _, segment := range strings.Split(path, ".") {
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// Leaves maps the name of every child element that has no children of its own
// to its trimmed text. When a name repeats the first occurrence wins.
func (n *Node) Leaves() map[string]string {
	fields := make(map[string]string)
	if n == nil {
		return fields
	}
	for _, c := range n.Children {
		if len(c.Children) > 0 {
			continue
		}
		if _, seen := fields[c.Name]; seen {
			continue
		}
		fields[c.Name] = c.Text
	}
	return fields
}
