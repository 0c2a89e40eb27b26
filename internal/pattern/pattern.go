// Package pattern implements a declarative shape matcher over syntax trees.
// A pattern describes the kind of node to match and, optionally, the shape
// of its children; sub-nodes can be bound to named captures for the rule
// that ran the match. Matching is pure and short-circuits on the first
// incompatible element; failure is a normal outcome, never an error.
package pattern

import "github.com/speclint/speclint/internal/syntax"

// Bindings holds the captures recorded by a successful match.
type Bindings struct {
	nodes map[string]*syntax.Node
	lists map[string][]*syntax.Node
}

// Node returns the singular capture recorded under name, or nil.
func (b *Bindings) Node(name string) *syntax.Node {
	if b == nil {
		return nil
	}
	return b.nodes[name]
}

// List returns the plural capture recorded under name.
func (b *Bindings) List(name string) []*syntax.Node {
	if b == nil {
		return nil
	}
	return b.lists[name]
}

func (b *Bindings) bindNode(name string, n *syntax.Node) {
	if b.nodes == nil {
		b.nodes = make(map[string]*syntax.Node)
	}
	b.nodes[name] = n
}

func (b *Bindings) bindList(name string, ns []*syntax.Node) {
	if b.lists == nil {
		b.lists = make(map[string][]*syntax.Node)
	}
	b.lists[name] = ns
}

// Pattern matches a single node.
type Pattern interface {
	match(n *syntax.Node, b *Bindings) bool
}

// Match runs p against n and returns the capture bindings on success.
func Match(p Pattern, n *syntax.Node) (*Bindings, bool) {
	b := &Bindings{}
	if n == nil || !p.match(n, b) {
		return nil, false
	}
	return b, true
}

// Matches reports whether p matches n, discarding captures.
func Matches(p Pattern, n *syntax.Node) bool {
	_, ok := Match(p, n)
	return ok
}

type anyPattern struct{}

func (anyPattern) match(n *syntax.Node, _ *Bindings) bool { return n != nil }

// Any matches any single node.
func Any() Pattern { return anyPattern{} }

type kindPattern struct{ kind syntax.Kind }

func (p kindPattern) match(n *syntax.Node, _ *Bindings) bool { return n.Kind == p.kind }

// Kind matches a node of the given kind with unconstrained children.
func Kind(k syntax.Kind) Pattern { return kindPattern{kind: k} }

type valuePattern struct{ value string }

func (p valuePattern) match(n *syntax.Node, _ *Bindings) bool { return n.Value == p.value }

// Value matches a node whose value equals v, regardless of kind.
func Value(v string) Pattern { return valuePattern{value: v} }

type predPattern struct{ fn func(*syntax.Node) bool }

func (p predPattern) match(n *syntax.Node, _ *Bindings) bool { return p.fn(n) }

// Pred matches a node satisfying fn. This is the hook through which the
// dialect registry participates in matching.
func Pred(fn func(*syntax.Node) bool) Pattern { return predPattern{fn: fn} }

type allPattern struct{ ps []Pattern }

func (p allPattern) match(n *syntax.Node, b *Bindings) bool {
	for _, sub := range p.ps {
		if !sub.match(n, b) {
			return false
		}
	}
	return true
}

// All matches when every sub-pattern matches the same node.
func All(ps ...Pattern) Pattern { return allPattern{ps: ps} }

type oneOfPattern struct{ ps []Pattern }

func (p oneOfPattern) match(n *syntax.Node, b *Bindings) bool {
	for _, sub := range p.ps {
		if sub.match(n, b) {
			return true
		}
	}
	return false
}

// OneOf matches when any one of the sub-patterns matches.
func OneOf(ps ...Pattern) Pattern { return oneOfPattern{ps: ps} }

type capturePattern struct {
	name string
	sub  Pattern
}

func (p capturePattern) match(n *syntax.Node, b *Bindings) bool {
	if !p.sub.match(n, b) {
		return false
	}
	b.bindNode(p.name, n)
	return true
}

// Capture records the matched node under name when sub matches.
func Capture(name string, sub Pattern) Pattern { return capturePattern{name: name, sub: sub} }

// restMarker is a sentinel child pattern: it stands for "zero or more
// further children, unconstrained" and is only valid in trailing position
// of a Shape child list.
type restMarker struct{ name string }

func (restMarker) match(_ *syntax.Node, _ *Bindings) bool { return false }

// Rest matches any remaining children of a Shape.
func Rest() Pattern { return restMarker{} }

// CaptureRest matches any remaining children of a Shape and records them as
// a plural capture under name.
func CaptureRest(name string) Pattern { return restMarker{name: name} }

type shapePattern struct {
	kind     syntax.Kind
	children []Pattern
	rest     *restMarker
}

// Shape matches a node of the given kind whose children match the child
// patterns in order. A trailing Rest or CaptureRest allows (and optionally
// captures) any further children; without one the arity must match exactly.
func Shape(k syntax.Kind, children ...Pattern) Pattern {
	sp := shapePattern{kind: k, children: children}
	if len(children) > 0 {
		if r, ok := children[len(children)-1].(restMarker); ok {
			sp.children = children[:len(children)-1]
			sp.rest = &r
		}
	}
	return sp
}

func (p shapePattern) match(n *syntax.Node, b *Bindings) bool {
	if n.Kind != p.kind {
		return false
	}
	if p.rest == nil {
		if len(n.Children) != len(p.children) {
			return false
		}
	} else if len(n.Children) < len(p.children) {
		return false
	}
	for i, cp := range p.children {
		if !cp.match(n.Children[i], b) {
			return false
		}
	}
	if p.rest != nil && p.rest.name != "" {
		b.bindList(p.rest.name, n.Children[len(p.children):])
	}
	return true
}

// CallNamed matches a call node whose selector satisfies nameFn.
func CallNamed(nameFn func(string) bool) Pattern {
	return All(Kind(syntax.KindCall), Pred(func(n *syntax.Node) bool {
		return nameFn(n.Value)
	}))
}
