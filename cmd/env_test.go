// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> engine layer -> store layer -> SQLite.
//
// Some internal packages show "[no test files]" - this is intentional.
// Those packages are covered by the CLI integration tests:
//   - internal/validate: covered by write/tag tests (invalid inputs fail)
//   - internal/repo: covered by init tests and every env setup
//   - internal/format: covered by history/compare/ls output assertions
//
// Unit tests for those packages would duplicate coverage without adding value.
// If underlying functionality breaks, the CLI tests fail - proving the stack works.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the vers binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "vers-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "vers"
		if os.PathSeparator == '\\' {
			binaryName = "vers.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary directory with an initialised vers
// repository and a local author configured so write commands work without
// an explicit -a flag.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{t: t, dir: dir, binary: binary}

	env.run("init")
	env.run("config", "author.name", "tester", "--local")

	return env
}

// run executes vers with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("vers %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes vers and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes vers with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("vers %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes vers with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// Speech drafts used across tests. Full snapshots, the way a CMS would
// submit them.
const (
	speechV1 = `Good evening.

Tonight I want to talk about healthcare.
Every family deserves affordable care.
Thank you.`

	speechV2 = `Good evening.

Tonight I want to talk about healthcare.
Every family in this state deserves affordable care.
We will cap prescription costs.
Thank you.`

	speechV3 = `Good evening.

Tonight I want to talk about healthcare and education.
Every family in this state deserves affordable care.
We will cap prescription costs.
Thank you, and good night.`
)
