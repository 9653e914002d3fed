//go:build basic || database

// Package integration runs the setupdeps binary end to end.
// To run these tests: go test -tags basic ./integration
// The database tests need Docker: go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a setupdeps binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}
	os.Exit(code)
}

// getSetupdepsBinary returns the path to the setupdeps binary, building it once if needed.
func getSetupdepsBinary() string {
	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "setupdeps-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "setupdeps")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build setupdeps: %v\n%s", err, out))
		}
		sharedBinaryPath = binPath
	})
	return sharedBinaryPath
}

// result captures one CLI invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// runSetupdeps runs the binary in dir with extra environment variables.
func runSetupdeps(t *testing.T, dir string, env []string, args ...string) result {
	t.Helper()
	cmd := exec.Command(getSetupdepsBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

const fakeGit = `#!/bin/sh
echo "git $*" >> "$TOOL_LOG"
case "$1" in
  branch) echo "${FAKE_BRANCH:-main}" ;;
  ls-remote) [ "$FAKE_REMOTE_HAS" = "$5" ] || exit 2 ;;
  clone)
    for last; do :; done
    mkdir -p "$last" && echo "cloned" > "$last/README"
    ;;
esac
`

const fakeUV = `#!/bin/sh
echo "uv $*" >> "$TOOL_LOG"
`

// fakeToolchain installs shell stand-ins for git and uv and returns the
// environment that puts them first on PATH plus the path of their call log.
func fakeToolchain(t *testing.T) ([]string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain uses POSIX shell scripts")
	}
	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "git"), []byte(fakeGit), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "uv"), []byte(fakeUV), 0o755))
	logPath := filepath.Join(t.TempDir(), "tools.log")
	env := []string{
		"PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH"),
		"TOOL_LOG=" + logPath,
		"PYUNDERSTAND_REF=",
		"HOME=" + t.TempDir(),
	}
	return env, logPath
}
