// Package checks holds the registered check implementations. The registry
// is a start-up-time list; the runner iterates it and never hard-codes
// check identities, so adding a check means adding one CheckDef here.
package checks

import (
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// Registered check ids.
const (
	TrunkDisciplineID  = "trunk-discipline"
	CommitConventionID = "commit-convention"
	KillSwitchLintID   = "kill-switch-lint"
	LintID             = "lint"
	TypecheckID        = "typecheck"
	UnitTestsID        = "unit-tests"
	CoverageDiffID     = "coverage-diff"
	ModeEvidenceID     = "mode-evidence"
	SecurityScanID     = "security-scan"
	APIContractID      = "api-contract"
)

var (
	quickAndFull = []schema.Profile{schema.QuickProfile, schema.FullProfile}
	fullOnly     = []schema.Profile{schema.FullProfile}

	functionalOnly = []schema.Mode{schema.FunctionalMode}
)

// All returns the complete check registry.
func All() []contract.CheckDef {
	return []contract.CheckDef{
		{ID: TrunkDisciplineID, Class: schema.CriticalClass, Profiles: quickAndFull, Run: runTrunkDiscipline},
		{ID: CommitConventionID, Class: schema.CriticalClass, Profiles: quickAndFull, Run: runCommitConvention},
		{ID: KillSwitchLintID, Class: schema.CriticalClass, Profiles: quickAndFull, Run: runKillSwitchLint},
		{ID: LintID, Class: schema.ImportantClass, Profiles: quickAndFull, Run: runLint},
		{ID: TypecheckID, Class: schema.ImportantClass, Profiles: quickAndFull, Run: runTypecheck},
		{ID: UnitTestsID, Class: schema.ImportantClass, Profiles: fullOnly, Modes: functionalOnly, Run: runUnitTests},
		{ID: CoverageDiffID, Class: schema.ImportantClass, Profiles: fullOnly, Modes: functionalOnly, Run: runCoverageDiff},
		{ID: ModeEvidenceID, Class: schema.ImportantClass, Profiles: fullOnly, Run: runModeEvidence},
		{ID: SecurityScanID, Class: schema.ImportantClass, Profiles: fullOnly, Run: runSecurityScan},
		{ID: APIContractID, Class: schema.ImportantClass, Profiles: fullOnly, Run: runAPIContract},
	}
}
