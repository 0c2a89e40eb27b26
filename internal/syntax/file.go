package syntax

import (
	"sort"

	tt "github.com/speclint/speclint/internal/types"
)

// Comment is a `#` comment captured during lexing. Text includes the leading
// hash, Start/End are byte offsets.
type Comment struct {
	Start int
	End   int
	Text  string
}

// File couples a parsed tree with the buffer it was parsed from.
type File struct {
	Filename string
	Src      []byte
	Root     *Node
	Comments []Comment

	lineOffsets []int // byte offset of the start of each line
}

// NewFile builds a File, wiring parent backlinks and the line index.
func NewFile(filename string, src []byte, root *Node, comments []Comment) *File {
	f := &File{
		Filename: filename,
		Src:      src,
		Root:     root,
		Comments: comments,
	}
	if root != nil {
		setParents(root)
	}
	f.lineOffsets = []int{0}
	for i, b := range src {
		if b == '\n' {
			f.lineOffsets = append(f.lineOffsets, i+1)
		}
	}
	return f
}

// Slice returns the source text in [start, end).
func (f *File) Slice(start, end int) string {
	if start < 0 || end > len(f.Src) || start > end {
		return ""
	}
	return string(f.Src[start:end])
}

// NodeText returns the original source text of n.
func (f *File) NodeText(n *Node) string {
	return f.Slice(n.Start, n.End)
}

// Line returns the 1-based line containing the given byte offset.
func (f *File) Line(offset int) int {
	return sort.Search(len(f.lineOffsets), func(i int) bool {
		return f.lineOffsets[i] > offset
	})
}

// PositionFor converts a byte offset into a Position.
func (f *File) PositionFor(offset int) tt.Position {
	line := f.Line(offset)
	return tt.Position{
		Line:   line,
		Column: offset - f.lineOffsets[line-1] + 1,
		Offset: offset,
	}
}

// LineStart returns the byte offset of the first character of the line
// containing offset.
func (f *File) LineStart(offset int) int {
	return f.lineOffsets[f.Line(offset)-1]
}

// LineEnd returns the byte offset just past the line containing offset,
// including its trailing newline when present.
func (f *File) LineEnd(offset int) int {
	line := f.Line(offset)
	if line >= len(f.lineOffsets) {
		return len(f.Src)
	}
	return f.lineOffsets[line]
}
