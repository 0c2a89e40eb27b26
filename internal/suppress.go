package internal

import (
	"strings"

	"github.com/speclint/speclint/internal/syntax"
)

const disableDirective = "speclint:disable"

// suppression silences rules on a single line. An empty rule set silences
// every rule.
type suppression struct {
	rules map[string]struct{}
}

// SuppressionManager maps line numbers to the suppressions active there.
type SuppressionManager struct {
	byLine map[int][]suppression
}

// ParseSuppressions collects `# speclint:disable` comments from the file.
// A directive on its own line applies to the following line; a trailing
// directive applies to its own line. Rule names may follow the directive,
// separated by commas.
func ParseSuppressions(f *syntax.File) *SuppressionManager {
	m := &SuppressionManager{byLine: make(map[int][]suppression)}
	for _, comment := range f.Comments {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "#"))
		if !strings.HasPrefix(text, disableDirective) {
			continue
		}
		rest := strings.TrimPrefix(text, disableDirective)
		s := suppression{rules: parseRuleList(rest)}

		line := f.Line(comment.Start)
		before := f.Slice(f.LineStart(comment.Start), comment.Start)
		if strings.TrimSpace(before) == "" {
			// the directive has its own line: it guards the next line
			line++
		}
		m.byLine[line] = append(m.byLine[line], s)
	}
	return m
}

func parseRuleList(rest string) map[string]struct{} {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil
	}
	rules := make(map[string]struct{})
	for _, name := range strings.Split(rest, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	return rules
}

// IsSuppressed reports whether the given rule is silenced on line.
func (m *SuppressionManager) IsSuppressed(line int, rule string) bool {
	for _, s := range m.byLine[line] {
		if s.rules == nil {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}
