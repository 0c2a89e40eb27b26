package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(src string) *File {
	return NewFile("test_spec.rb", []byte(src), nil, nil)
}

func TestLineIndex(t *testing.T) {
	f := newTestFile("ab\ncd\n\nef")

	tests := []struct {
		offset int
		line   int
	}{
		{offset: 0, line: 1},
		{offset: 2, line: 1}, // the newline belongs to its own line
		{offset: 3, line: 2},
		{offset: 5, line: 2},
		{offset: 6, line: 3}, // empty line
		{offset: 7, line: 4},
		{offset: 8, line: 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.line, f.Line(tc.offset), "offset %d", tc.offset)
	}
}

func TestPositionFor(t *testing.T) {
	f := newTestFile("ab\ncd\n")

	p := f.PositionFor(4)
	assert.Equal(t, 2, p.Line)
	assert.Equal(t, 2, p.Column)
	assert.Equal(t, 4, p.Offset)

	p = f.PositionFor(0)
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 1, p.Column)
}

func TestLineBounds(t *testing.T) {
	f := newTestFile("ab\ncd\nef")

	assert.Equal(t, 0, f.LineStart(1))
	assert.Equal(t, 3, f.LineStart(4))
	assert.Equal(t, 3, f.LineEnd(1))
	assert.Equal(t, 6, f.LineEnd(4))
	// last line has no trailing newline
	assert.Equal(t, 6, f.LineStart(7))
	assert.Equal(t, 8, f.LineEnd(7))
}

func TestSliceAndNodeText(t *testing.T) {
	f := newTestFile("describe 'x'")

	assert.Equal(t, "describe", f.Slice(0, 8))
	assert.Equal(t, "", f.Slice(-1, 3))
	assert.Equal(t, "", f.Slice(0, 100))

	n := &Node{Kind: KindString, Value: "x", Start: 9, End: 12}
	assert.Equal(t, "'x'", f.NodeText(n))
}

func TestWalkOrderAndPrune(t *testing.T) {
	recv := &Node{Kind: KindConst, Value: "RSpec"}
	call := &Node{Kind: KindCall, Value: "describe", Recv: recv, Children: []*Node{
		{Kind: KindString, Value: "x"},
	}}
	params := &Node{Kind: KindParams}
	body := &Node{Kind: KindBody, Children: []*Node{
		{Kind: KindCall, Value: "inner"},
	}}
	block := &Node{Kind: KindBlock, Children: []*Node{call, params, body}}

	var visited []string
	Walk(block, func(n *Node) bool {
		visited = append(visited, n.Kind.String()+":"+n.Value)
		return true
	})
	assert.Equal(t, []string{
		"block:", "call:describe", "const:RSpec", "string:x", "params:", "body:", "call:inner",
	}, visited)

	// pruning skips the subtree but not the siblings
	visited = nil
	Walk(block, func(n *Node) bool {
		visited = append(visited, n.Kind.String())
		return n.Kind != KindCall
	})
	assert.Equal(t, []string{"block", "call", "params", "body", "call"}, visited)
}

func TestParentWiring(t *testing.T) {
	inner := &Node{Kind: KindSymbol, Value: "a"}
	call := &Node{Kind: KindCall, Value: "it", Children: []*Node{inner}}
	root := &Node{Kind: KindRoot, Children: []*Node{call}}

	f := NewFile("x_spec.rb", nil, root, nil)
	require.NotNil(t, f.Root)
	assert.Nil(t, root.Parent)
	assert.Equal(t, root, call.Parent)
	assert.Equal(t, call, inner.Parent)
}

func TestBlockAccessorsOnWrongKind(t *testing.T) {
	n := &Node{Kind: KindCall, Value: "it"}
	assert.Nil(t, n.BlockCall())
	assert.Nil(t, n.BlockParams())
	assert.Nil(t, n.BlockBody())
	assert.Nil(t, n.PairKey())
	assert.Nil(t, n.PairValue())
	assert.Empty(t, n.Args())

	b := &Node{Kind: KindBlock}
	assert.Nil(t, b.Args())
	assert.Nil(t, b.BlockCall())
}
