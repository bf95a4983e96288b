package checks

import (
	"context"
	"strings"
	"testing"

	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTrunkDiscipline(t *testing.T) {
	tests := []struct {
		name    string
		branch  string
		commits int
		want    schema.CheckStatus
	}{
		{"main passes", "main", 0, schema.PassStatus},
		{"master passes", "master", 0, schema.PassStatus},
		{"trunk passes", "trunk", 0, schema.PassStatus},
		{"short-lived feature branch passes", "feat/checkout-form", 3, schema.PassStatus},
		{"fix branch passes", "fix/cart-total", 1, schema.PassStatus},
		{"unconventional name fails", "johns-wip", 1, schema.FailStatus},
		{"uppercase in branch name fails", "feat/Checkout", 1, schema.FailStatus},
		{"long-lived branch fails", "feat/mega-refactor", 16, schema.FailStatus},
		{"at the divergence limit passes", "feat/big-but-ok", 15, schema.PassStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &schema.Context{
				BranchName:     tt.branch,
				CommitMessages: make([]string, tt.commits),
			}
			outcome, err := runTrunkDiscipline(context.Background(), rc, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Status)
		})
	}
}

func TestRunCommitConvention(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     schema.CheckStatus
	}{
		{
			name: "no commits skips",
			want: schema.SkipStatus,
		},
		{
			name:     "conventional subjects pass",
			messages: []string{"feat(cart): add quantity stepper", "fix: handle empty basket"},
			want:     schema.PassStatus,
		},
		{
			name:     "mode tag is stripped before validation",
			messages: []string{"perf: cut bundle size [MODE:NF]"},
			want:     schema.PassStatus,
		},
		{
			name:     "merge commits are exempt",
			messages: []string{"Merge branch 'main' into feat/checkout-form"},
			want:     schema.PassStatus,
		},
		{
			name:     "breaking change marker passes",
			messages: []string{"feat!: drop legacy cart API"},
			want:     schema.PassStatus,
		},
		{
			name:     "free-form subject fails",
			messages: []string{"updated stuff"},
			want:     schema.FailStatus,
		},
		{
			name:     "missing description fails",
			messages: []string{"fix: "},
			want:     schema.FailStatus,
		},
		{
			name:     "overlong subject fails",
			messages: []string{"feat: " + strings.Repeat("x", 70)},
			want:     schema.FailStatus,
		},
		{
			name:     "one bad commit fails the set",
			messages: []string{"feat: good one", "bad one"},
			want:     schema.FailStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &schema.Context{CommitMessages: tt.messages}
			outcome, err := runCommitConvention(context.Background(), rc, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Status)
		})
	}
}

func TestSummarizeViolationsCaps(t *testing.T) {
	few := summarizeViolations([]string{"a", "b"})
	assert.Equal(t, "a; b", few)

	many := summarizeViolations([]string{"a", "b", "c", "d", "e"})
	assert.Contains(t, many, "and 2 more")
}
