// Package syntax defines the read-only node model for parsed spec files.
// Nodes are built once by the parser and never mutated afterwards; rules only
// read kinds, children and byte ranges and index into the original buffer.
package syntax

// Kind is the closed set of node kinds produced by the parser.
type Kind int

const (
	KindRoot Kind = iota
	KindCall
	KindBlock
	KindParams
	KindBody
	KindIdent
	KindConst
	KindSymbol
	KindString
	KindInt
	KindBool
	KindNil
	KindPair
	KindRocketPair
	KindSplat
	KindHash
	KindArray
	KindLambda
)

var kindNames = map[Kind]string{
	KindRoot:       "root",
	KindCall:       "call",
	KindBlock:      "block",
	KindParams:     "params",
	KindBody:       "body",
	KindIdent:      "ident",
	KindConst:      "const",
	KindSymbol:     "symbol",
	KindString:     "string",
	KindInt:        "int",
	KindBool:       "bool",
	KindNil:        "nil",
	KindPair:       "pair",
	KindRocketPair: "rocket-pair",
	KindSplat:      "splat",
	KindHash:       "hash",
	KindArray:      "array",
	KindLambda:     "lambda",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one node of the parsed tree.
//
// Value holds the selector name for calls, the decoded content for literals
// and the name for idents and consts. Recv is only set on calls with an
// explicit receiver (`RSpec.describe`). Start and End are byte offsets into
// the original buffer, End exclusive.
//
// Children layout per kind:
//   - KindRoot:       statements
//   - KindCall:       arguments
//   - KindBlock:      [call, params, body]
//   - KindParams:     parameter idents
//   - KindBody:       statements
//   - KindPair:       [key, value] (`key: value`)
//   - KindRocketPair: [key, value] (`key => value`)
//   - KindSplat:      [expression]
//   - KindHash:       pairs
//   - KindArray:      elements
//   - KindLambda:     [params, body]
type Node struct {
	Kind     Kind
	Value    string
	Recv     *Node
	Children []*Node
	Parent   *Node
	Start    int
	End      int
}

// BlockCall returns the call component of a block node.
func (n *Node) BlockCall() *Node {
	if n.Kind != KindBlock || len(n.Children) != 3 {
		return nil
	}
	return n.Children[0]
}

// BlockParams returns the params component of a block node.
func (n *Node) BlockParams() *Node {
	if n.Kind != KindBlock || len(n.Children) != 3 {
		return nil
	}
	return n.Children[1]
}

// BlockBody returns the body component of a block node.
func (n *Node) BlockBody() *Node {
	if n.Kind != KindBlock || len(n.Children) != 3 {
		return nil
	}
	return n.Children[2]
}

// Args returns the arguments of a call node.
func (n *Node) Args() []*Node {
	if n.Kind != KindCall {
		return nil
	}
	return n.Children
}

// PairKey returns the key of a pair or rocket-pair node.
func (n *Node) PairKey() *Node {
	if (n.Kind != KindPair && n.Kind != KindRocketPair) || len(n.Children) != 2 {
		return nil
	}
	return n.Children[0]
}

// PairValue returns the value of a pair or rocket-pair node.
func (n *Node) PairValue() *Node {
	if (n.Kind != KindPair && n.Kind != KindRocketPair) || len(n.Children) != 2 {
		return nil
	}
	return n.Children[1]
}

// Index returns the position of n within its parent's children, or -1 for
// the root.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Siblings returns the parent's children without n itself.
func (n *Node) Siblings() []*Node {
	if n.Parent == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Parent.Children)-1)
	for _, c := range n.Parent.Children {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and all descendants in depth-first pre-order. Returning
// false from fn prunes the subtree below the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if n.Recv != nil {
		Walk(n.Recv, fn)
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// setParents wires parent backlinks below n.
func setParents(n *Node) {
	if n.Recv != nil {
		n.Recv.Parent = n
		setParents(n.Recv)
	}
	for _, c := range n.Children {
		c.Parent = n
		setParents(c)
	}
}
