package lints

import (
	"sort"
	"strings"

	"github.com/speclint/speclint/internal/syntax"
)

// metadataEntry is one trailing metadata argument of an example, group,
// hook or shared-group include call: either a positional tag or a
// key-value pair.
type metadataEntry struct {
	node *syntax.Node // the whole entry as it appears in the source
	key  *syntax.Node // pair key; nil for positional entries
}

// classifyMetadata splits the trailing arguments into the positional prefix
// and the key-value suffix. When the final argument is an explicit hash
// literal its pairs form the key-value group and braced points at the hash.
// ok is false when the list cannot be classified: a positional entry after
// a key-value entry, or a hash literal in a non-final position.
func classifyMetadata(args []*syntax.Node) (positional, pairs []metadataEntry, braced *syntax.Node, ok bool) {
	for i, arg := range args {
		switch arg.Kind {
		case syntax.KindPair, syntax.KindRocketPair:
			pairs = append(pairs, metadataEntry{node: arg, key: arg.PairKey()})
		case syntax.KindHash:
			if i != len(args)-1 {
				return nil, nil, nil, false
			}
			braced = arg
			for _, pair := range arg.Children {
				switch pair.Kind {
				case syntax.KindPair, syntax.KindRocketPair:
					pairs = append(pairs, metadataEntry{node: pair, key: pair.PairKey()})
				default:
					pairs = append(pairs, metadataEntry{node: pair})
				}
			}
		default:
			if len(pairs) > 0 {
				return nil, nil, nil, false
			}
			positional = append(positional, metadataEntry{node: arg})
		}
	}
	return positional, pairs, braced, true
}

// sortKey derives the comparable key of an entry. Symbol and string
// literals compare by their literal value; everything else falls back to
// its raw source text, which keeps the order total and deterministic for
// arbitrary expressions.
func sortKey(f *syntax.File, e metadataEntry) string {
	n := e.node
	if e.key != nil {
		n = e.key
	}
	switch n.Kind {
	case syntax.KindSymbol, syntax.KindString:
		return n.Value
	default:
		return f.NodeText(n)
	}
}

// entriesSorted reports whether the entries' sort keys are in
// non-decreasing order.
func entriesSorted(f *syntax.File, entries []metadataEntry) bool {
	for i := 1; i < len(entries); i++ {
		if sortKey(f, entries[i-1]) > sortKey(f, entries[i]) {
			return false
		}
	}
	return true
}

// sortEntries returns a stably sorted copy: entries with equal keys keep
// their original relative order.
func sortEntries(f *syntax.File, entries []metadataEntry) []metadataEntry {
	out := make([]metadataEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(f, out[i]) < sortKey(f, out[j])
	})
	return out
}

// renderMetadata renders the canonical form of the whole metadata region:
// the positional group stably sorted, then the key-value group stably
// sorted, entries joined with a comma and a single space. Each entry's own
// source text is re-emitted verbatim, so separator style and inner spacing
// are preserved. A braced key-value group keeps its braces and their
// original inner padding.
func renderMetadata(f *syntax.File, positional, pairs []metadataEntry, braced *syntax.Node) string {
	var parts []string
	for _, e := range sortEntries(f, positional) {
		parts = append(parts, f.NodeText(e.node))
	}

	sortedPairs := sortEntries(f, pairs)
	if braced == nil {
		for _, e := range sortedPairs {
			parts = append(parts, f.NodeText(e.node))
		}
	} else if len(braced.Children) > 0 {
		var inner []string
		for _, e := range sortedPairs {
			inner = append(inner, f.NodeText(e.node))
		}
		first := braced.Children[0]
		last := braced.Children[len(braced.Children)-1]
		prefix := f.Slice(braced.Start, first.Start)
		suffix := f.Slice(last.End, braced.End)
		parts = append(parts, prefix+strings.Join(inner, ", ")+suffix)
	} else {
		parts = append(parts, f.NodeText(braced))
	}

	return strings.Join(parts, ", ")
}
