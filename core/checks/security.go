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

// secretPattern pairs a label with the expression that detects it, so the
// failure reason names the kind of secret without echoing its value.
type secretPattern struct {
	Label string
	Regex *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"AWS access key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"private key block", regexp.MustCompile(`-----BEGIN (RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
	{"GitHub token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)},
	{"Slack token", regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`)},
	{"hardcoded credential", regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key|auth[_-]?token)\s*[:=]\s*["'][^"']{8,}["']`)},
}

// runSecurityScan looks for secrets introduced by the change. Only the
// touched lines are scanned, so historical findings belong to a dedicated
// audit, not to this gate.
func runSecurityScan(_ context.Context, rc *schema.Context, _ *contract.CheckDeps) (schema.Outcome, error) {
	hits := changedLineText(rc)
	if len(hits) == 0 {
		return schema.Pass(), nil
	}

	var findings []string
	for _, hit := range hits {
		for _, sp := range secretPatterns {
			if sp.Regex.MatchString(hit.Text) {
				findings = append(findings, fmt.Sprintf("%s at %s:%d", sp.Label, hit.File, hit.Line))
				break
			}
		}
	}
	if len(findings) == 0 {
		return schema.Pass(), nil
	}

	sort.Strings(findings)
	return schema.Fail(fmt.Sprintf("possible secrets introduced: %s", strings.Join(findings, "; "))), nil
}
