package lints

import (
	"github.com/speclint/speclint/internal/dialect"
	"github.com/speclint/speclint/internal/pattern"
	"github.com/speclint/speclint/internal/syntax"
	tt "github.com/speclint/speclint/internal/types"
)

const (
	sortMetadataRuleName = "sort-metadata"
	msgSortMetadata      = "sort metadata alphabetically"
)

// DetectUnsortedMetadata flags example, group, hook and shared-group
// include calls whose trailing metadata is not alphabetically sorted.
// Positional tags and key-value pairs are checked independently; values
// never take part in the ordering. Metadata spanning more than one line is
// exempt because a mechanical one-line reorder cannot be guaranteed there.
func DetectUnsortedMetadata(f *syntax.File, reg *dialect.Registry, severity tt.Severity) ([]tt.Issue, error) {
	carrier := pattern.All(
		pattern.CallNamed(reg.IsMetadataCarrier),
		pattern.Pred(hasPlainReceiver),
	)
	blockPat := pattern.Shape(syntax.KindBlock,
		pattern.Capture("call", carrier),
		pattern.Kind(syntax.KindParams),
		pattern.Kind(syntax.KindBody),
	)

	var issues []tt.Issue
	syntax.Walk(f.Root, func(n *syntax.Node) bool {
		b, match := pattern.Match(blockPat, n)
		if !match {
			return true
		}
		call := b.Node("call")
		args := call.Args()
		if len(args) < 2 {
			return true
		}

		// everything after the leading required argument is metadata
		meta := args[1:]
		positional, pairs, braced, ok := classifyMetadata(meta)
		if !ok || len(positional)+len(pairs) == 0 {
			return true
		}

		first, last := meta[0], meta[len(meta)-1]
		if f.Line(first.Start) != f.Line(last.End-1) {
			return true
		}
		if entriesSorted(f, positional) && entriesSorted(f, pairs) {
			return true
		}

		sorted := renderMetadata(f, positional, pairs, braced)
		issues = append(issues, tt.Issue{
			Rule:       sortMetadataRuleName,
			Category:   "style",
			Severity:   severity,
			Filename:   f.Filename,
			Message:    msgSortMetadata,
			Suggestion: sorted,
			Start:      f.PositionFor(first.Start),
			End:        f.PositionFor(last.End),
			Autofix: []tt.Fix{{
				Start: first.Start,
				End:   last.End,
				New:   sorted,
			}},
			Confidence: 1.0,
		})
		return true
	})

	return issues, nil
}

// hasPlainReceiver accepts receiver-free calls and calls on a bare
// constant (`RSpec.describe`).
func hasPlainReceiver(n *syntax.Node) bool {
	return n.Recv == nil || n.Recv.Kind == syntax.KindConst
}
