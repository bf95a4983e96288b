package cmd

import (
	"strings"
	"testing"

	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
)

func TestFormatUncovered(t *testing.T) {
	short := schema.ChangedLine{File: "src/cart.ts", Line: 12}
	assert.Equal(t, "src/cart.ts:12", formatUncovered(short))

	deep := schema.ChangedLine{File: strings.Repeat("very/deep/", 10) + "leaf.ts", Line: 3}
	got := formatUncovered(deep)
	assert.True(t, strings.HasPrefix(got, "..."), "deep paths keep their tail, not their head")
	assert.True(t, strings.HasSuffix(got, "leaf.ts:3"))
	assert.LessOrEqual(t, len(got), maxUncoveredPathWidth+len(":3"))
}
