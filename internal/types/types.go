package types

import "fmt"

// Position is a location within a source buffer. Offset is the byte offset,
// Line and Column are 1-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Issue represents a lint issue found in a spec file.
type Issue struct {
	Rule       string   `json:"rule"`
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	Filename   string   `json:"filename"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Note       string   `json:"note,omitempty"`
	Start      Position `json:"start"`
	End        Position `json:"end"`

	// Autofix, when non-empty, is the set of byte-range replacements that
	// resolves the issue. The ranges always refer to the original, unedited
	// buffer and never overlap each other: a relocation is expressed as a
	// zero-width insert plus a deletion, not as one span covering both.
	Autofix    []Fix   `json:"autofix,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Fix replaces the bytes in [Start, End) with New.
type Fix struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	New   string `json:"new"`
}

// ConfigRule is the per-rule configuration block.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
