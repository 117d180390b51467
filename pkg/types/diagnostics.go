package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------
//
// Decoders report anomalies that do not abort decoding (unknown tables, unlock
// records without metadata, grade disagreements) as diagnostics instead of
// errors. Fatal conditions still surface as errors; when a caller wants them in
// the same report it can add them with SevError or SevCritical.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevInfo     Severity = iota // unusual but valid
	SevWarning                  // data was dropped or overridden
	SevError                    // a table or record could not be used
	SevCritical                 // the whole file could not be decoded
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// DiagCategory classifies the type of issue found.
type DiagCategory int

const (
	DiagStructure DiagCategory = iota // header/directory/table layout
	DiagData                          // record contents
	DiagIntegrity                     // cross-references between progress file and descriptor
)

func (c DiagCategory) String() string {
	switch c {
	case DiagStructure:
		return "structure"
	case DiagData:
		return "data"
	case DiagIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name.
func (c DiagCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Issue codes for the diagnostics the decoders emit.
const (
	IssueUnknownTable    = "unrecognized table type"
	IssueMissingMetadata = "unlock record has no metadata"
	IssueGradeMismatch   = "grade differs between progress file and descriptor"
	IssueGradeFromRecord = "grade taken from progress file"
	IssueTableFailed     = "table could not be decoded"
	IssueDuplicateRecord = "duplicate record for trophy id"
)

// Diagnostic is a single issue found while decoding one game.
type Diagnostic struct {
	Severity  Severity     `json:"severity"`
	Category  DiagCategory `json:"category"`
	Offset    uint64       `json:"offset"`
	Structure string       `json:"structure"`
	Issue     string       `json:"issue"`
	TrophyID  *uint32      `json:"trophy_id,omitempty"`
	Expected  any          `json:"expected,omitempty"`
	Actual    any          `json:"actual,omitempty"`
}

// ForTrophy returns d with TrophyID set.
func (d Diagnostic) ForTrophy(id uint32) Diagnostic {
	d.TrophyID = &id
	return d
}

// DiagnosticReport collects all diagnostics found for one game.
type DiagnosticReport struct {
	Source      string       `json:"source,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     DiagSummary  `json:"summary"`

	BySeverity map[Severity][]Diagnostic `json:"-"`
	ByOffset   []Diagnostic              `json:"-"`
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport(source string) *DiagnosticReport {
	return &DiagnosticReport{
		Source:     source,
		BySeverity: make(map[Severity][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates indices.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	switch d.Severity {
	case SevCritical:
		r.Summary.Critical++
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}
	if r.BySeverity == nil {
		r.BySeverity = make(map[Severity][]Diagnostic)
	}
	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
}

// Merge appends every diagnostic of other.
func (r *DiagnosticReport) Merge(other *DiagnosticReport) {
	if other == nil {
		return
	}
	for _, d := range other.Diagnostics {
		r.Add(d)
	}
}

// Finalize sorts diagnostics by offset for sequential output.
func (r *DiagnosticReport) Finalize() {
	r.ByOffset = make([]Diagnostic, len(r.Diagnostics))
	copy(r.ByOffset, r.Diagnostics)
	sort.SliceStable(r.ByOffset, func(i, j int) bool {
		return r.ByOffset[i].Offset < r.ByOffset[j].Offset
	})
}

// Len returns the number of diagnostics.
func (r *DiagnosticReport) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Diagnostics)
}

// HasErrors returns true if any errors or critical issues were found.
func (r *DiagnosticReport) HasErrors() bool {
	return r != nil && (r.Summary.Critical > 0 || r.Summary.Errors > 0)
}

// Count returns the number of diagnostics carrying the given issue code.
func (r *DiagnosticReport) Count(issue string) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Issue == issue {
			n++
		}
	}
	return n
}

// FormatJSON returns the report as formatted JSON (2-space indentation).
func (r *DiagnosticReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatTextCompact returns a compact one-line-per-issue text format.
func (r *DiagnosticReport) FormatTextCompact() string {
	var b strings.Builder
	if r.ByOffset == nil {
		r.Finalize()
	}
	for _, d := range r.ByOffset {
		fmt.Fprintf(&b, "0x%08X [%s/%s/%s] %s", d.Offset, d.Severity, d.Structure, d.Category, d.Issue)
		if d.TrophyID != nil {
			fmt.Fprintf(&b, " (trophy %d)", *d.TrophyID)
		}
		if d.Expected != nil || d.Actual != nil {
			fmt.Fprintf(&b, " expected=%v actual=%v", d.Expected, d.Actual)
		}
		b.WriteString("\n")
	}
	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	}
	return b.String()
}
