package schema

// Outcome is the sum type a check run yields: pass, fail with a reason,
// or skip when the check is inapplicable to the current inputs.
type Outcome struct {
	Status CheckStatus
	Reason string // required for fail, optional for skip
}

// Pass returns a passing outcome.
func Pass() Outcome {
	return Outcome{Status: PassStatus}
}

// Fail returns a failing outcome with a human-readable reason.
// The reason is never used for control flow.
func Fail(reason string) Outcome {
	return Outcome{Status: FailStatus, Reason: reason}
}

// Skip returns a skip outcome. Skipped checks produce no CheckResult.
func Skip(reason string) Outcome {
	return Outcome{Status: SkipStatus, Reason: reason}
}

// CheckResult records one executed check. Skipped checks and checks never
// scheduled due to a fail-fast abort produce no CheckResult at all.
type CheckResult struct {
	ID         string `json:"id"`
	OK         bool   `json:"ok"`
	Reason     string `json:"reason,omitempty"` // present when OK is false
	DurationMs int64  `json:"ms"`
}

// ProveResult is the final aggregate emitted exactly once as the last
// log entry of a run.
type ProveResult struct {
	Mode    Mode          `json:"mode"`
	Checks  []CheckResult `json:"checks"` // sorted by check id
	TotalMs int64         `json:"totalMs"`
	Success bool          `json:"success"` // AND of all Checks[].OK
}
