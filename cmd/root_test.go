package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/internal/logwriter"
	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateFatalErrorIsLoggedBeforeExit(t *testing.T) {
	origLog, origCfg := log, cfg
	t.Cleanup(func() { log, cfg = origLog, origCfg })

	var buf bytes.Buffer
	log = logwriter.NewLogger(&buf, true, false)
	cfg = &contract.Config{
		RepoPath:     t.TempDir(), // not a git repository
		Workers:      1,
		CheckTimeout: time.Minute,
		CommitLimit:  contract.DefaultCommitLimit,
		CoverageFile: contract.DefaultCoverageFile,
		TaskFile:     contract.DefaultTaskFile,
	}

	err := rootCmd.RunE(rootCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateAborted)

	// JSON mode must carry the abort as a machine-readable error entry.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry schema.LogEntry
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, schema.ErrorLevel, entry.Level)
	assert.NotEmpty(t, entry.Message)
}

func TestSharedSetupToleratesBrokenDiscoveredConfig(t *testing.T) {
	origLog, origCfg := log, cfg
	t.Cleanup(func() { log, cfg = origLog, origCfg })
	cfg = &contract.Config{}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".prove.yaml"), []byte("{{{ not yaml"), 0o644))
	t.Chdir(dir)

	initConfig()
	require.NoError(t, sharedSetup(nil, nil), "a broken discovered config must not block the gate")
	assert.Equal(t, contract.DefaultWorkers, cfg.Workers, "defaults apply when the config file is unreadable")
}
