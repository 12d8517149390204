package testkit

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

const vectorOpen = "(VECTOR("

// InitNode is one level of a parsed vector literal.
type InitNode struct {
	Elem  string
	Width uint8
	Items []InitItem
}

// InitItem is either a leaf expression or a nested literal.
type InitItem struct {
	Leaf   string
	Nested *InitNode
}

// Slots returns the lanes the node's items fill: one per leaf, the width of
// every nested literal.
func (n *InitNode) Slots() int {
	total := 0
	for _, it := range n.Items {
		if it.Nested != nil {
			total += int(it.Nested.Width)
		} else {
			total++
		}
	}
	return total
}

// Leaves returns every leaf expression in textual order.
func (n *InitNode) Leaves() []string {
	var out []string
	for _, it := range n.Items {
		if it.Nested != nil {
			out = append(out, it.Nested.Leaves()...)
		} else {
			out = append(out, it.Leaf)
		}
	}
	return out
}

// Depth returns the nesting depth; a flat literal has depth 1.
func (n *InitNode) Depth() int {
	deepest := 0
	for _, it := range n.Items {
		if it.Nested != nil {
			if d := it.Nested.Depth(); d > deepest {
				deepest = d
			}
		}
	}
	return deepest + 1
}

// ParseInitializer parses text of the form
// (VECTOR(T, N))(item, item, ...), where items are leaf expressions or
// nested literals of the same form.
func ParseInitializer(text string) (*InitNode, error) {
	p := &initParser{s: text}
	node, err := p.vector()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("trailing text at %d: %q", p.pos, p.s[p.pos:])
	}
	return node, nil
}

// CheckInitializer runs the literal invariants:
// 1) the outermost literal has the expected width
// 2) every level fills exactly its own width
// 3) nested literals repeat the outer element type
func CheckInitializer(text string, width int) error {
	node, err := ParseInitializer(text)
	if err != nil {
		return err
	}
	if int(node.Width) != width {
		return fmt.Errorf("literal width %d, want %d", node.Width, width)
	}
	return checkNode(node, node.Elem)
}

func checkNode(n *InitNode, elem string) error {
	if n.Elem != elem {
		return fmt.Errorf("nested element type %q differs from %q", n.Elem, elem)
	}
	if got := n.Slots(); got != int(n.Width) {
		return fmt.Errorf("literal of width %d fills %d slots", n.Width, got)
	}
	for _, it := range n.Items {
		if it.Nested == nil {
			continue
		}
		if err := checkNode(it.Nested, elem); err != nil {
			return err
		}
	}
	return nil
}

type initParser struct {
	s   string
	pos int
}

func (p *initParser) rest() string { return p.s[p.pos:] }

func (p *initParser) vector() (*InitNode, error) {
	if !strings.HasPrefix(p.rest(), vectorOpen) {
		return nil, fmt.Errorf("expected %q at %d", vectorOpen, p.pos)
	}
	p.pos += len(vectorOpen)

	sep := strings.Index(p.rest(), ", ")
	if sep <= 0 {
		return nil, fmt.Errorf("missing element type at %d", p.pos)
	}
	elem := p.rest()[:sep]
	p.pos += sep + 2

	end := strings.Index(p.rest(), "))(")
	if end <= 0 {
		return nil, fmt.Errorf("missing width at %d", p.pos)
	}
	n, err := strconv.Atoi(p.rest()[:end])
	if err != nil {
		return nil, fmt.Errorf("bad width at %d: %w", p.pos, err)
	}
	width, err := safecast.Conv[uint8](n)
	if err != nil {
		return nil, fmt.Errorf("width overflow: %w", err)
	}
	p.pos += end + 3

	node := &InitNode{Elem: elem, Width: width}
	for {
		if strings.HasPrefix(p.rest(), vectorOpen) {
			child, err := p.vector()
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, InitItem{Nested: child})
		} else {
			leaf := p.leaf()
			if leaf == "" {
				return nil, fmt.Errorf("empty item at %d", p.pos)
			}
			node.Items = append(node.Items, InitItem{Leaf: leaf})
		}
		if p.pos >= len(p.s) {
			return nil, fmt.Errorf("unterminated literal")
		}
		switch p.s[p.pos] {
		case ')':
			p.pos++
			return node, nil
		case ',':
			p.pos++
			for p.pos < len(p.s) && p.s[p.pos] == ' ' {
				p.pos++
			}
		default:
			return nil, fmt.Errorf("unexpected %q at %d", p.s[p.pos], p.pos)
		}
	}
}

// leaf scans up to the next top-level ',' or ')'.
func (p *initParser) leaf() string {
	start := p.pos
	depth := 0
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return strings.TrimSpace(p.s[start:p.pos])
			}
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(p.s[start:p.pos])
			}
		}
		p.pos++
	}
	return strings.TrimSpace(p.s[start:p.pos])
}
