package internal

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/speclint/speclint/internal/dialect"
	"github.com/speclint/speclint/internal/parser"
	tt "github.com/speclint/speclint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	registry     *dialect.Registry
	rules        map[string]LintRule
	ignoredRules map[string]bool
	ignoredPaths []string
}

// NewEngine creates a new lint engine bound to a dialect registry.
func NewEngine(registry *dialect.Registry, rules map[string]tt.ConfigRule) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil dialect registry")
	}
	engine := &Engine{registry: registry}
	engine.applyRules(rules)
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func(reg *dialect.Registry) LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"sort-metadata":       NewSortMetadataRule,
	"let-before-examples": NewLetBeforeExamplesRule,
	"create-list":         NewCreateListRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr(e.registry)
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr(e.registry)
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isPathIgnored(filename) {
		return nil, nil
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return e.runSource(filename, source)
}

// RunSource applies all lint rules to the given source and returns a slice
// of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.runSource("", source)
}

func (e *Engine) runSource(filename string, source []byte) ([]tt.Issue, error) {
	file, err := parser.Parse(filename, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	suppressions := ParseSuppressions(file)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(file)
			if err != nil {
				return
			}

			filtered := filterSuppressed(issues, suppressions)

			mu.Lock()
			allIssues = append(allIssues, filtered...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	// rules run concurrently, so give the combined result a stable order
	sort.Slice(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Offset != allIssues[j].Start.Offset {
			return allIssues[i].Start.Offset < allIssues[j].Start.Offset
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})

	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

func (e *Engine) isPathIgnored(path string) bool {
	for _, prefix := range e.ignoredPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// filterSuppressed drops issues silenced by disable comments.
func filterSuppressed(issues []tt.Issue, m *SuppressionManager) []tt.Issue {
	if m == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !m.IsSuppressed(issue.Start.Line, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
