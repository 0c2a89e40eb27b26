package lints

import (
	"fmt"

	"github.com/speclint/speclint/internal/dialect"
	"github.com/speclint/speclint/internal/fixer"
	"github.com/speclint/speclint/internal/pattern"
	"github.com/speclint/speclint/internal/syntax"
	tt "github.com/speclint/speclint/internal/types"
)

const (
	letBeforeExamplesRuleName = "let-before-examples"
	msgLetBeforeExamples      = "declare `%s` before the examples in the group"
)

// DetectLetAfterExamples flags `let` and `subject` declarations that appear
// after the first example, nested group or shared-group include in the same
// group body. The autofix relocates the declaration, together with comment
// lines directly above it, in front of the first example.
func DetectLetAfterExamples(f *syntax.File, reg *dialect.Registry, severity tt.Severity) ([]tt.Issue, error) {
	groupPat := pattern.Shape(syntax.KindBlock,
		pattern.CallNamed(reg.IsExampleGroup),
		pattern.Kind(syntax.KindParams),
		pattern.Capture("body", pattern.Kind(syntax.KindBody)),
	)

	var issues []tt.Issue
	syntax.Walk(f.Root, func(n *syntax.Node) bool {
		b, match := pattern.Match(groupPat, n)
		if !match {
			return true
		}
		body := b.Node("body")

		var firstExample *syntax.Node
		for _, stmt := range body.Children {
			if isExampleOrGroupOrInclude(reg, stmt) {
				if firstExample == nil {
					firstExample = stmt
				}
				continue
			}
			if firstExample == nil || !isHelperDeclaration(reg, stmt) {
				continue
			}

			name := stmt.BlockCall().Value
			issue := tt.Issue{
				Rule:       letBeforeExamplesRuleName,
				Category:   "style",
				Severity:   severity,
				Filename:   f.Filename,
				Message:    fmt.Sprintf(msgLetBeforeExamples, name),
				Start:      f.PositionFor(stmt.Start),
				End:        f.PositionFor(stmt.End),
				Confidence: 1.0,
			}
			if fixes, ok := fixer.MoveBefore(f.Src, stmt.Start, stmt.End, firstExample.Start); ok {
				issue.Autofix = fixes
			}
			issues = append(issues, issue)
		}
		return true
	})

	return issues, nil
}

// isExampleOrGroupOrInclude reports whether stmt anchors the example region
// of a group body: an example, a nested group, or a shared-group include
// (with or without a block).
func isExampleOrGroupOrInclude(reg *dialect.Registry, stmt *syntax.Node) bool {
	anchors := func(name string) bool {
		return reg.IsExample(name) || reg.IsExampleGroup(name) || reg.IsSharedGroupInclude(name)
	}
	switch stmt.Kind {
	case syntax.KindBlock:
		call := stmt.BlockCall()
		return call != nil && call.Recv == nil && anchors(call.Value)
	case syntax.KindCall:
		return stmt.Recv == nil && reg.IsSharedGroupInclude(stmt.Value)
	}
	return false
}

// isHelperDeclaration reports whether stmt declares a memoized helper:
// a `let`/`subject` call with a block.
func isHelperDeclaration(reg *dialect.Registry, stmt *syntax.Node) bool {
	if stmt.Kind != syntax.KindBlock {
		return false
	}
	call := stmt.BlockCall()
	return call != nil && call.Recv == nil && reg.IsHelper(call.Value)
}
