package schema

// Custom string types for type safety.
type (
	// Mode represents the resolved delivery mode of a change-set.
	Mode string

	// ChangeType represents how a changed line was modified.
	ChangeType string

	// CheckClass represents the fail-fast classification of a check.
	CheckClass string

	// Profile represents an invocation profile selecting a check subset.
	Profile string

	// CheckStatus represents the outcome status of a single check run.
	CheckStatus string

	// LogLevel represents the level of a log entry.
	LogLevel string

	// RunnerState represents the orchestration state of the runner.
	RunnerState string
)

// All delivery modes supported.
const (
	FunctionalMode    Mode = "F"  // behavior change, requires test evidence
	NonFunctionalMode Mode = "NF" // config/docs/analysis change
)

// ValidModes is the set of delivery modes accepted from descriptors and tags.
var ValidModes = map[Mode]struct{}{
	FunctionalMode:    {},
	NonFunctionalMode: {},
}

// All change types supported.
const (
	AddedChange    ChangeType = "added"
	ModifiedChange ChangeType = "modified"
	DeletedChange  ChangeType = "deleted"
)

// All check classes supported.
const (
	CriticalClass  CheckClass = "critical"  // first failure aborts the remaining run
	ImportantClass CheckClass = "important" // failures accumulate
)

// All invocation profiles supported.
const (
	QuickProfile Profile = "quick"
	FullProfile  Profile = "full" // default
)

// All check statuses supported.
const (
	PassStatus CheckStatus = "pass"
	FailStatus CheckStatus = "fail"
	SkipStatus CheckStatus = "skip" // inapplicable, absent from the report
)

// All log levels supported.
const (
	HeaderLevel  LogLevel = "header"
	InfoLevel    LogLevel = "info"
	SuccessLevel LogLevel = "success"
	WarnLevel    LogLevel = "warn"
	ErrorLevel   LogLevel = "error"
	ResultLevel  LogLevel = "result" // final aggregate report, emitted once
)

// All runner states. Reported and Aborted are terminal.
const (
	IdleState         RunnerState = "idle"
	ContextBuiltState RunnerState = "context-built"
	ModeResolvedState RunnerState = "mode-resolved"
	RunningState      RunnerState = "running"
	AggregatedState   RunnerState = "aggregated"
	ReportedState     RunnerState = "reported"
	AbortedState      RunnerState = "aborted"
)
