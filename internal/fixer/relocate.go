package fixer

import (
	"bytes"
	"strings"

	tt "github.com/speclint/speclint/internal/types"
)

// MoveBefore computes the edits that relocate the node spanning
// [nodeStart, nodeEnd) in front of the line containing targetStart. The
// move decomposes into a zero-width insert at the target line plus a
// deletion of the old position, so text between the two stays untouched
// and edits from other rules inside that region survive batch application.
// The moved region is expanded to whole lines and takes any comment lines
// directly above the node with it; its text is preserved verbatim. Returns
// ok=false when the move cannot be expressed as a well-formed splice
// (target not strictly before the node, or overlapping line regions).
func MoveBefore(src []byte, nodeStart, nodeEnd, targetStart int) ([]tt.Fix, bool) {
	if nodeStart < 0 || nodeEnd > len(src) || nodeStart >= nodeEnd || targetStart < 0 {
		return nil, false
	}

	regionStart := attachedCommentStart(src, lineStartAt(src, nodeStart))
	regionEnd := lineEndAt(src, nodeEnd-1)
	insertAt := lineStartAt(src, targetStart)
	if insertAt >= regionStart {
		return nil, false
	}

	moved := string(src[regionStart:regionEnd])
	if !strings.HasSuffix(moved, "\n") {
		moved += "\n"
	}

	return []tt.Fix{
		{Start: insertAt, End: insertAt, New: moved},
		{Start: regionStart, End: regionEnd, New: ""},
	}, true
}

// lineStartAt returns the offset of the first byte of the line containing
// offset.
func lineStartAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	idx := bytes.LastIndexByte(src[:offset], '\n')
	return idx + 1
}

// lineEndAt returns the offset just past the line containing offset,
// including the trailing newline when present.
func lineEndAt(src []byte, offset int) int {
	if offset >= len(src) {
		return len(src)
	}
	idx := bytes.IndexByte(src[offset:], '\n')
	if idx < 0 {
		return len(src)
	}
	return offset + idx + 1
}

// attachedCommentStart walks upward from lineStart over comment lines that
// sit directly above it, with no blank line in between, and returns the
// start of the topmost one.
func attachedCommentStart(src []byte, lineStart int) int {
	for lineStart > 0 {
		prevStart := lineStartAt(src, lineStart-1)
		line := strings.TrimSpace(string(src[prevStart : lineStart-1]))
		if line == "" || !strings.HasPrefix(line, "#") {
			break
		}
		lineStart = prevStart
	}
	return lineStart
}

// Indent returns the leading whitespace of the line containing offset.
func Indent(src []byte, offset int) string {
	start := lineStartAt(src, offset)
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}
