package internal

import (
	"github.com/speclint/speclint/internal/dialect"
	"github.com/speclint/speclint/internal/lints"
	"github.com/speclint/speclint/internal/syntax"
	tt "github.com/speclint/speclint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given parsed file and returns a
	// slice of Issues.
	Check(file *syntax.File) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

// baseRule carries the severity plumbing shared by all rules.
type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity     { return r.severity }
func (r *baseRule) SetSeverity(s tt.Severity) { r.severity = s }

type SortMetadataRule struct {
	baseRule
	registry *dialect.Registry
}

func NewSortMetadataRule(reg *dialect.Registry) LintRule {
	return &SortMetadataRule{baseRule{tt.SeverityWarning}, reg}
}

func (r *SortMetadataRule) Check(file *syntax.File) ([]tt.Issue, error) {
	return lints.DetectUnsortedMetadata(file, r.registry, r.Severity())
}

func (r *SortMetadataRule) Name() string {
	return "sort-metadata"
}

type LetBeforeExamplesRule struct {
	baseRule
	registry *dialect.Registry
}

func NewLetBeforeExamplesRule(reg *dialect.Registry) LintRule {
	return &LetBeforeExamplesRule{baseRule{tt.SeverityWarning}, reg}
}

func (r *LetBeforeExamplesRule) Check(file *syntax.File) ([]tt.Issue, error) {
	return lints.DetectLetAfterExamples(file, r.registry, r.Severity())
}

func (r *LetBeforeExamplesRule) Name() string {
	return "let-before-examples"
}

type CreateListRule struct {
	baseRule
}

func NewCreateListRule(_ *dialect.Registry) LintRule {
	return &CreateListRule{baseRule{tt.SeverityWarning}}
}

func (r *CreateListRule) Check(file *syntax.File) ([]tt.Issue, error) {
	return lints.DetectTimesCreate(file, r.Severity())
}

func (r *CreateListRule) Name() string {
	return "create-list"
}
