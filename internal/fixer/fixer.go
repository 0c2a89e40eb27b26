// Package fixer applies autocorrections as byte-range splices against the
// original source buffer. Edits are computed during detection, always refer
// to the unedited buffer, and are applied here in a single batch.
package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/speclint/speclint/internal/types"
)

// Edit replaces the bytes in [Start, End) with New.
type Edit struct {
	Start int
	End   int
	New   string
}

// Apply splices edits into src and returns the corrected buffer. Edits are
// applied against the one immutable snapshot in descending start order so
// earlier offsets stay valid. Zero-width inserts at the same offset are
// all kept, in input order. Rules emit disjoint edits (relocations are an
// insert plus a deletion, never one span covering both), so overlap is not
// expected; should two edits still overlap, the one starting first wins
// and the other is dropped, and a later run picks up whatever the dropped
// edit was fixing.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	for _, e := range edits {
		if e.Start < 0 || e.End > len(src) || e.Start > e.End {
			return nil, fmt.Errorf("edit range [%d, %d) out of bounds for %d-byte buffer", e.Start, e.End, len(src))
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	kept := sorted[:0]
	prevEnd := -1
	for _, e := range sorted {
		if e.Start < prevEnd {
			continue
		}
		kept = append(kept, e)
		prevEnd = e.End
	}

	out := make([]byte, len(src))
	copy(out, src)
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		out = append(out[:e.Start], append([]byte(e.New), out[e.End:]...)...)
	}
	return out, nil
}

// Fixer applies the autofixes carried by issues to files on disk.
type Fixer struct {
	DryRun        bool
	MinConfidence float64
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix reads filename, applies all eligible autofixes and writes the result
// back. In dry-run mode it only reports what would change.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if f.DryRun {
		for _, issue := range issues {
			if !f.eligible(issue) {
				continue
			}
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			for _, fix := range issue.Autofix {
				if fix.New != "" {
					fmt.Printf("Replacement:\n%s\n", fix.New)
				}
			}
		}
		return nil
	}

	fixed, n, err := f.FixSource(content, issues)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Printf("Fixed %d issue(s) in %s\n", n, filename)
	return nil
}

// FixSource applies eligible autofixes to src and returns the corrected
// buffer and the number of issues fixed.
func (f *Fixer) FixSource(src []byte, issues []tt.Issue) ([]byte, int, error) {
	var edits []Edit
	fixed := 0
	for _, issue := range issues {
		if !f.eligible(issue) {
			continue
		}
		for _, fix := range issue.Autofix {
			edits = append(edits, Edit{Start: fix.Start, End: fix.End, New: fix.New})
		}
		fixed++
	}
	if len(edits) == 0 {
		return src, 0, nil
	}
	out, err := Apply(src, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, fixed, nil
}

func (f *Fixer) eligible(issue tt.Issue) bool {
	return len(issue.Autofix) > 0 && issue.Confidence >= f.MinConfidence
}
