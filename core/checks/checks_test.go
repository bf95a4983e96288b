package checks

import (
	"testing"

	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllRegistry(t *testing.T) {
	defs := All()
	require.Len(t, defs, 10)

	byID := make(map[string]int)
	quickCount := 0
	for _, d := range defs {
		byID[d.ID]++
		require.NotNil(t, d.Run, "%s has no implementation", d.ID)
		require.NotEmpty(t, d.Profiles, "%s belongs to no profile", d.ID)
		if d.InProfile(schema.QuickProfile) {
			quickCount++
		}
	}

	for id, n := range byID {
		assert.Equal(t, 1, n, "check id %s registered more than once", id)
	}
	assert.Equal(t, 5, quickCount, "quick profile is the 5 cheap checks")
}

func TestAllCriticalChecksAreInQuickProfile(t *testing.T) {
	for _, d := range All() {
		if d.Class == schema.CriticalClass {
			assert.True(t, d.InProfile(schema.QuickProfile), "%s is critical and must run in every profile", d.ID)
		}
	}
}

func TestAllModeRestrictions(t *testing.T) {
	restricted := map[string][]schema.Mode{
		UnitTestsID:    {schema.FunctionalMode},
		CoverageDiffID: {schema.FunctionalMode},
	}

	for _, d := range All() {
		want, ok := restricted[d.ID]
		if !ok {
			assert.Empty(t, d.Modes, "%s should be mode-insensitive", d.ID)
			continue
		}
		assert.Equal(t, want, d.Modes, "%s", d.ID)
	}
}
