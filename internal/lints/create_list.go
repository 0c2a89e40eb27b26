package lints

import (
	"fmt"
	"strings"

	"github.com/speclint/speclint/internal/pattern"
	"github.com/speclint/speclint/internal/syntax"
	tt "github.com/speclint/speclint/internal/types"
)

const (
	createListRuleName = "create-list"
	msgCreateList      = "prefer create_list(%s, %s) over %s.times with a single create call"
)

// factoryMethods are the single-instance construction calls the rule
// recognizes inside a times block.
var factoryMethods = map[string]bool{
	"create": true,
	"build":  true,
}

var batchMethod = map[string]string{
	"create": "create_list",
	"build":  "build_list",
}

// DetectTimesCreate flags `n.times` loops whose whole body is a single
// factory call and rewrites them to the batch form, collapsing either block
// style into one call. When the inner call has its own block, or the body
// reads the loop's block parameter, the offense is still reported but no
// rewrite is attempted: the block body cannot be carried over mechanically
// and a read parameter means each iteration differs. A declared but unused
// parameter does not block the rewrite.
func DetectTimesCreate(f *syntax.File, severity tt.Severity) ([]tt.Issue, error) {
	timesPat := pattern.Shape(syntax.KindBlock,
		pattern.Capture("call", pattern.All(
			pattern.CallNamed(func(name string) bool { return name == "times" }),
			pattern.Pred(func(n *syntax.Node) bool {
				return n.Recv != nil && n.Recv.Kind == syntax.KindInt && len(n.Args()) == 0
			}),
		)),
		pattern.Capture("params", pattern.Kind(syntax.KindParams)),
		pattern.Capture("body", pattern.Kind(syntax.KindBody)),
	)

	var issues []tt.Issue
	syntax.Walk(f.Root, func(n *syntax.Node) bool {
		b, match := pattern.Match(timesPat, n)
		if !match {
			return true
		}
		body := b.Node("body")
		if len(body.Children) != 1 {
			return true
		}

		inner, hasOwnBlock := innerFactoryCall(body.Children[0])
		if inner == nil {
			return true
		}
		args := inner.Args()
		if len(args) == 0 || args[0].Kind != syntax.KindSymbol {
			return true
		}

		count := b.Node("call").Recv.Value
		factory := f.NodeText(args[0])
		issue := tt.Issue{
			Rule:       createListRuleName,
			Category:   "style",
			Severity:   severity,
			Filename:   f.Filename,
			Message:    fmt.Sprintf(msgCreateList, factory, count, count),
			Start:      f.PositionFor(n.Start),
			End:        f.PositionFor(n.End),
			Confidence: 1.0,
		}
		if !hasOwnBlock && !paramRead(b.Node("params"), body) {
			rewritten := renderBatchCall(f, batchMethod[inner.Value], factory, count, args[1:])
			issue.Suggestion = rewritten
			issue.Autofix = []tt.Fix{{Start: n.Start, End: n.End, New: rewritten}}
		}
		issues = append(issues, issue)
		return true
	})

	return issues, nil
}

// paramRead reports whether the body references any of the block's
// declared parameters.
func paramRead(params, body *syntax.Node) bool {
	if len(params.Children) == 0 {
		return false
	}
	names := make(map[string]bool, len(params.Children))
	for _, p := range params.Children {
		names[p.Value] = true
	}
	read := false
	syntax.Walk(body, func(n *syntax.Node) bool {
		if n.Kind == syntax.KindIdent && names[n.Value] {
			read = true
		}
		return !read
	})
	return read
}

// innerFactoryCall unwraps the single statement of a times block body.
// hasOwnBlock is true when the factory call carries its own block.
func innerFactoryCall(stmt *syntax.Node) (call *syntax.Node, hasOwnBlock bool) {
	switch stmt.Kind {
	case syntax.KindCall:
		call = stmt
	case syntax.KindBlock:
		call = stmt.BlockCall()
		hasOwnBlock = true
	default:
		return nil, false
	}
	if call == nil || call.Recv != nil || !factoryMethods[call.Value] {
		return nil, false
	}
	return call, hasOwnBlock
}

// renderBatchCall renders the collapsed batch-construction call, carrying
// the remaining arguments over verbatim.
func renderBatchCall(f *syntax.File, method, factory, count string, rest []*syntax.Node) string {
	parts := []string{factory, count}
	for _, arg := range rest {
		parts = append(parts, f.NodeText(arg))
	}
	return method + "(" + strings.Join(parts, ", ") + ")"
}
