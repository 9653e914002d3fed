package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaihendry/setupdeps/internal/contract"
	"github.com/kaihendry/setupdeps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWriter(t *testing.T) {
	assert.Nil(t, logWriter(&contract.Config{Output: schema.TextOut}))
	assert.Nil(t, logWriter(&contract.Config{}))
	assert.Equal(t, os.Stderr, logWriter(&contract.Config{Output: schema.JSONOut}))
	assert.Equal(t, os.Stderr, logWriter(&contract.Config{Output: schema.CSVOut}))
}

// TestExecuteResolve_Override runs the real wiring; an override needs no git or network.
func TestExecuteResolve_Override(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resolution.csv")
	cfg := testConfig()
	cfg.RefOverride = "feature-x"
	cfg.Output = schema.CSVOut
	cfg.OutputFile = out

	require.NoError(t, ExecuteResolve(context.Background(), cfg))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "repo,ref,source\nkaihendry/pyunderstand,feature-x,env\n", string(data))
}

func TestExecuteResolve_BadParser(t *testing.T) {
	cfg := testConfig()
	cfg.Parser = "ini"
	assert.Error(t, ExecuteResolve(context.Background(), cfg))
	assert.Error(t, ExecuteInstall(context.Background(), cfg, nil))
}
