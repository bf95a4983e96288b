package schema

// Position is a source location endpoint in a coverage report.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is the source span of an instrumented statement, branch or function.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ContainsLine reports whether the range spans the given line number.
func (r Range) ContainsLine(line int) bool {
	return r.Start.Line <= line && line <= r.End.Line
}

// BranchMeta describes one instrumented branch and its arm locations.
type BranchMeta struct {
	Type      string  `json:"type"`
	Loc       Range   `json:"loc"`
	Locations []Range `json:"locations"`
}

// FunctionMeta describes one instrumented function.
type FunctionMeta struct {
	Name string `json:"name"`
	Decl Range  `json:"decl"`
	Loc  Range  `json:"loc"`
}

// CoverageFile holds the statement/branch/function hit maps for one source
// file, in the istanbul report shape. The id keys of StatementMap and S are
// identical sets; same for the branch and function pairs.
type CoverageFile struct {
	Path         string                  `json:"path"`
	StatementMap map[string]Range        `json:"statementMap"`
	S            map[string]int          `json:"s"` // statement id -> hit count
	BranchMap    map[string]BranchMeta   `json:"branchMap"`
	B            map[string][]int        `json:"b"` // branch id -> per-arm hit counts
	FnMap        map[string]FunctionMeta `json:"fnMap"`
	F            map[string]int          `json:"f"` // function id -> hit count
}

// CoverageReport maps repository-relative file paths to their hit maps.
// Files excluded from instrumentation have no entry.
type CoverageReport map[string]CoverageFile

// CoverageResult is the diff-scoped coverage summary computed fresh per
// check run from the changed lines and the coverage report.
type CoverageResult struct {
	TotalLines     int           `json:"totalLines"`   // changed coverable lines
	CoveredLines   int           `json:"coveredLines"` // subset with all statements hit
	Percentage     float64       `json:"percentage"`   // 100 when TotalLines is 0
	UncoveredLines []ChangedLine `json:"uncoveredLines,omitempty"`
}
