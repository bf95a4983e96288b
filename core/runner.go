package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/internal/logwriter"
	"github.com/brightops/prove/schema"
)

// timeoutReason is the failure reason recorded when a check's bounded
// execution time elapses. Timeout is a failure reason, not a distinct
// error type.
const timeoutReason = "timeout"

// Runner orchestrates one gate invocation: build the Context once, resolve
// the mode, select the applicable checks, execute them with bounded
// concurrency, aggregate, and report. It is one-shot; no check is retried.
type Runner struct {
	cfg    *contract.Config
	client contract.GitClient
	tools  contract.ToolRunner
	log    *logwriter.Logger
	defs   []contract.CheckDef
	state  schema.RunnerState
}

// NewRunner creates a runner over the given check definitions.
func NewRunner(cfg *contract.Config, client contract.GitClient, tools contract.ToolRunner, log *logwriter.Logger, defs []contract.CheckDef) *Runner {
	return &Runner{
		cfg:    cfg,
		client: client,
		tools:  tools,
		log:    log,
		defs:   defs,
		state:  schema.IdleState,
	}
}

// State returns the runner's current orchestration state.
func (r *Runner) State() schema.RunnerState {
	return r.state
}

// Execute drives the run to a terminal state. Only context-build and
// mode-resolution failures propagate as errors (the Aborted state);
// check failures are captured in the returned ProveResult.
func (r *Runner) Execute(ctx context.Context) (schema.ProveResult, error) {
	rc, err := BuildContext(ctx, r.cfg, r.client)
	if err != nil {
		r.state = schema.AbortedState
		return schema.ProveResult{}, err
	}
	r.state = schema.ContextBuiltState

	mode, err := ResolveMode(rc)
	if err != nil {
		r.state = schema.AbortedState
		return schema.ProveResult{}, err
	}
	rc.Mode = mode // context construction completes here; read-only after
	r.state = schema.ModeResolvedState

	profile := schema.FullProfile
	if r.cfg.Quick {
		profile = schema.QuickProfile
	}
	selected := selectChecks(r.defs, profile, mode)

	r.log.Header(fmt.Sprintf("prove: %s profile, mode %s, %d checks, %d workers",
		profile, mode, len(selected), r.cfg.Workers), map[string]any{
		"profile": string(profile),
		"mode":    string(mode),
		"checks":  len(selected),
	})

	r.state = schema.RunningState
	results := r.runChecks(ctx, rc, selected)
	r.state = schema.AggregatedState

	report := r.log.GenerateReport(mode, results)
	r.state = schema.ReportedState
	return report, nil
}

// selectChecks filters the registry by profile and mode, and orders the
// schedule critical-first so a trunk or commit violation aborts the run
// before expensive checks start.
func selectChecks(defs []contract.CheckDef, profile schema.Profile, mode schema.Mode) []contract.CheckDef {
	selected := make([]contract.CheckDef, 0, len(defs))
	for _, d := range defs {
		if d.InProfile(profile) && d.AppliesTo(mode) {
			selected = append(selected, d)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		ci := selected[i].Class == schema.CriticalClass
		cj := selected[j].Class == schema.CriticalClass
		if ci != cj {
			return ci
		}
		return selected[i].ID < selected[j].ID
	})
	return selected
}

// runChecks executes the selected checks on a fixed-size worker pool.
// Checks have no inter-dependencies, so any interleaving is valid; report
// determinism comes from sorting at aggregation, not from scheduling.
//
// Fail-fast: the first critical failure aborts the remaining run. Checks
// not yet started are skipped and produce no CheckResult; in-flight checks
// finish (subprocesses are not orphaned) but their results are discarded.
func (r *Runner) runChecks(ctx context.Context, rc *schema.Context, defs []contract.CheckDef) []schema.CheckResult {
	checkCh := make(chan contract.CheckDef, len(defs))
	var aborted atomic.Bool
	var mu sync.Mutex
	var results []schema.CheckResult

	var wg sync.WaitGroup
	for range r.cfg.Workers {
		wg.Go(func() {
			for def := range checkCh {
				if aborted.Load() {
					continue // skipped, not failed
				}
				res, produced := r.runOne(ctx, rc, def)
				if !produced {
					continue
				}

				mu.Lock()
				if aborted.Load() {
					// The run aborted while this check was in flight.
					mu.Unlock()
					continue
				}
				results = append(results, res)
				r.logCheck(def, res)
				if def.Class == schema.CriticalClass && !res.OK {
					aborted.Store(true)
				}
				mu.Unlock()
			}
		})
	}

	for _, def := range defs {
		checkCh <- def
	}
	close(checkCh)
	wg.Wait()

	return results
}

// runOne executes a single check under the per-check timeout, translating
// skips, unexpected errors, panics and timeouts into the uniform result
// shape. A check implementation bug must never crash the whole run.
func (r *Runner) runOne(ctx context.Context, rc *schema.Context, def contract.CheckDef) (schema.CheckResult, bool) {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, r.cfg.CheckTimeout)
	defer cancel()

	outcome := r.invoke(cctx, rc, def)
	elapsed := time.Since(start).Milliseconds()

	if cctx.Err() == context.DeadlineExceeded {
		return schema.CheckResult{ID: def.ID, OK: false, Reason: timeoutReason, DurationMs: elapsed}, true
	}
	switch outcome.Status {
	case schema.SkipStatus:
		r.log.Info(fmt.Sprintf("%s skipped: %s", def.ID, outcome.Reason), nil)
		return schema.CheckResult{}, false
	case schema.PassStatus:
		return schema.CheckResult{ID: def.ID, OK: true, DurationMs: elapsed}, true
	default:
		return schema.CheckResult{ID: def.ID, OK: false, Reason: outcome.Reason, DurationMs: elapsed}, true
	}
}

// invoke calls the check function with panic containment. Errors returned
// by a check are unexpected conditions (missing tool, internal bug) and
// become failing outcomes with the error message as reason.
func (r *Runner) invoke(ctx context.Context, rc *schema.Context, def contract.CheckDef) (outcome schema.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			outcome = schema.Fail(fmt.Sprintf("check panicked: %v", p))
		}
	}()

	outcome, err := def.Run(ctx, rc, &contract.CheckDeps{Cfg: r.cfg, Tools: r.tools})
	if err != nil {
		return schema.Fail(err.Error())
	}
	return outcome
}

// logCheck emits the per-check progress line. Callers hold the results
// mutex, keeping log order consistent with result recording.
func (r *Runner) logCheck(def contract.CheckDef, res schema.CheckResult) {
	if res.OK {
		r.log.Success(fmt.Sprintf("%s (%dms)", def.ID, res.DurationMs), map[string]any{"check": def.ID, "ms": res.DurationMs})
		return
	}
	r.log.Error(fmt.Sprintf("%s: %s (%dms)", def.ID, res.Reason, res.DurationMs), map[string]any{"check": def.ID, "ms": res.DurationMs})
}
