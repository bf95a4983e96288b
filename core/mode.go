package core

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/brightops/prove/schema"
)

// ErrModeUnresolved indicates that neither a task descriptor nor a commit
// tag declares the delivery mode. Ambiguity must not silently default to
// the less strict mode, so resolution fails closed.
var ErrModeUnresolved = errors.New("delivery mode unresolved: declare it in the task descriptor or tag the latest commit with [MODE:F] or [MODE:NF]")

// modeTagRegex matches an explicit inline mode tag in a commit message.
var modeTagRegex = regexp.MustCompile(`\[MODE:(F|NF)\]`)

// ResolveMode classifies the change-set as functional or non-functional.
// Resolution order, first match wins:
//  1. the machine-readable task descriptor, when present;
//  2. an inline [MODE:F] / [MODE:NF] tag in the most recent commit message.
//
// The mode is fixed once per invocation and does not change during a run.
func ResolveMode(rc *schema.Context) (schema.Mode, error) {
	if rc.Task != nil {
		if _, ok := schema.ValidModes[rc.Task.Mode]; !ok {
			return "", fmt.Errorf("task descriptor declares invalid mode %q: %w", rc.Task.Mode, ErrModeUnresolved)
		}
		return rc.Task.Mode, nil
	}

	if m := modeTagRegex.FindStringSubmatch(rc.LatestCommitMessage()); m != nil {
		return schema.Mode(m[1]), nil
	}

	return "", ErrModeUnresolved
}
