package checks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// Patterns that neutralize a kill switch in source. The scan only looks
// at lines the change actually touched, so pre-existing offenders in
// untouched code never block an unrelated change.
var killSwitchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)KILL_SWITCH\s*[:=]\s*(false|0|off|"off")`),
	regexp.MustCompile(`(?i)killSwitch(Enabled)?\s*[:=]\s*false`),
	regexp.MustCompile(`(?i)(skip|disable|bypass)[_-]?kill[_-]?switch`),
	regexp.MustCompile(`(?i)FORCE_ENABLE\s*[:=]\s*(true|1|"on")`),
}

// runKillSwitchLint fails when a touched line disables a feature kill
// switch. Shipping with a dead kill switch removes the only fast rollback
// lever, so this check is critical in every profile.
func runKillSwitchLint(_ context.Context, rc *schema.Context, _ *contract.CheckDeps) (schema.Outcome, error) {
	hits := changedLineText(rc)
	if len(hits) == 0 {
		return schema.Pass(), nil
	}

	var offenders []string
	for _, hit := range hits {
		for _, pattern := range killSwitchPatterns {
			if pattern.MatchString(hit.Text) {
				offenders = append(offenders, fmt.Sprintf("%s:%d", hit.File, hit.Line))
				break
			}
		}
	}
	if len(offenders) == 0 {
		return schema.Pass(), nil
	}

	sort.Strings(offenders)
	return schema.Fail(fmt.Sprintf("kill switch disabled at %s", strings.Join(offenders, ", "))), nil
}
