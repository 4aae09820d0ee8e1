package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "FORTUNELOG_WANT_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the child process launched by
// the run command tests: it prints the requested variables and exits.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}
	code := 0
	for _, a := range args {
		if a == "fail" {
			code = 7
			continue
		}
		fmt.Printf("%s=%s\n", a, os.Getenv(a))
	}
	os.Exit(code)
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes a fresh command tree in-process.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	code := run(context.Background(), root, args)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// projectWithConfig creates a config dir holding config.yaml and returns it.
func projectWithConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	return dir
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "version")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "fortunelog-dev v"+Version)
	assert.Contains(t, res.stdout, modulePath)
}

func TestInit_WritesThenKeepsConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".fortunelog")

	res := runCLI(t, "--config-dir", dir, "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Wrote ")
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	res = runCLI(t, "--config-dir", dir, "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Config already exists")

	res = runCLI(t, "--config-dir", dir, "run", "--dry-run")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "command: ./gradlew bootRun")
}

func TestBadLogLevel(t *testing.T) {
	res := runCLI(t, "--log-level", "loud", "version")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "log level")
}

func TestEnvPrint(t *testing.T) {
	work := t.TempDir()
	envPath := filepath.Join(work, ".env")
	content := "# comment\nexport FOO = \"bar baz\"\nEMPTY=\nBAD LINE WITHOUT EQUALS\nA=1\nA=2\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	cfgDir := projectWithConfig(t, fmt.Sprintf("tasks:\n  bootRun:\n    command: ./gradlew\n    dir: %q\n", work))

	t.Run("masked text", func(t *testing.T) {
		res := runCLI(t, "--config-dir", cfgDir, "env", "print")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Equal(t, "FOO=****\nEMPTY=\nA=****\n", res.stdout)
	})

	t.Run("values shown", func(t *testing.T) {
		res := runCLI(t, "--config-dir", cfgDir, "env", "print", "--show-values")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Equal(t, "FOO=bar baz\nEMPTY=\nA=2\n", res.stdout)
	})

	t.Run("json", func(t *testing.T) {
		res := runCLI(t, "--config-dir", cfgDir, "env", "print", "--format", "json", "--show-values")
		require.Equal(t, exitSuccess, res.code, res.stderr)

		var entries []map[string]string
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
		assert.Equal(t, []map[string]string{
			{"key": "FOO", "value": "bar baz"},
			{"key": "EMPTY", "value": ""},
			{"key": "A", "value": "2"},
		}, entries)
	})

	t.Run("explicit file", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.env")
		require.NoError(t, os.WriteFile(other, []byte("ONLY=1\n"), 0o600))

		res := runCLI(t, "--config-dir", cfgDir, "env", "print", "--file", other, "--show-values", "--format", "dotenv")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		assert.Equal(t, "ONLY=1\n", res.stdout)
	})

	t.Run("unknown format", func(t *testing.T) {
		res := runCLI(t, "--config-dir", cfgDir, "env", "print", "--format", "xml")
		assert.Equal(t, exitUserError, res.code)
	})

	t.Run("unknown task", func(t *testing.T) {
		res := runCLI(t, "--config-dir", cfgDir, "env", "print", "--task", "ghost")
		assert.Equal(t, exitUserError, res.code)
		assert.Contains(t, res.stderr, "unknown task")
	})
}

func TestEnvPrint_MissingFileIsEmpty(t *testing.T) {
	cfgDir := projectWithConfig(t, fmt.Sprintf("tasks:\n  bootRun:\n    command: ./gradlew\n    dir: %q\n", t.TempDir()))

	res := runCLI(t, "--config-dir", cfgDir, "env", "print")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Empty(t, res.stdout)
}

func TestEnvLint(t *testing.T) {
	cfgDir := projectWithConfig(t, "")
	dir := t.TempDir()

	clean := filepath.Join(dir, "clean.env")
	require.NoError(t, os.WriteFile(clean, []byte("A=1\nB=two\n"), 0o600))
	res := runCLI(t, "--config-dir", cfgDir, "env", "lint", "--file", clean)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ok (2 keys)")

	differs := filepath.Join(dir, "differs.env")
	require.NoError(t, os.WriteFile(differs, []byte("A=1\nB=\"${A}x\"\n"), 0o600))
	res = runCLI(t, "--config-dir", cfgDir, "env", "lint", "--file", differs)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stdout, `B: loader="${A}x" strict="1x"`)

	res = runCLI(t, "--config-dir", cfgDir, "env", "lint", "--file", filepath.Join(dir, "missing.env"))
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "not found")
}

func helperConfig(t *testing.T, work string, extraArgs ...string) string {
	t.Helper()
	args := append([]string{"-test.run=TestHelperProcess", "--"}, extraArgs...)
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return projectWithConfig(t, fmt.Sprintf(`tasks:
  helper:
    command: %q
    args: [%s]
    dir: %q
`, os.Args[0], strings.Join(quoted, ", "), work))
}

func TestRun_InjectsEnvFile(t *testing.T) {
	work := t.TempDir()
	env := fmt.Sprintf("export %s=1\nSUPABASE_URL='http://localhost:54321'\n", helperEnv)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte(env), 0o600))
	cfgDir := helperConfig(t, work, "SUPABASE_URL")

	res := runCLI(t, "--config-dir", cfgDir, "run", "helper", "--", "EXTRA_ARG_AS_VAR")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "SUPABASE_URL=http://localhost:54321\n")
	assert.Contains(t, res.stdout, "EXTRA_ARG_AS_VAR=\n")
}

func TestRun_PropagatesExitCode(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte(helperEnv+"=1\n"), 0o600))
	cfgDir := helperConfig(t, work, "fail")

	res := runCLI(t, "--config-dir", cfgDir, "run", "helper")
	assert.Equal(t, 7, res.code)
}

func TestRun_DryRun(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("B=2\nA=1\n"), 0o600))
	cfgDir := projectWithConfig(t, fmt.Sprintf("tasks:\n  bootRun:\n    command: ./gradlew\n    args: [bootRun]\n    dir: %q\n", work))

	res := runCLI(t, "--config-dir", cfgDir, "run", "--dry-run")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "task: bootRun\n")
	assert.Contains(t, res.stdout, "command: ./gradlew bootRun\n")
	assert.Contains(t, res.stdout, "env file: "+filepath.Join(work, ".env"))
	assert.Contains(t, res.stdout, "env: +A +B\n")
}

func TestRun_DryRunMissingEnvFile(t *testing.T) {
	cfgDir := projectWithConfig(t, fmt.Sprintf("tasks:\n  bootRun:\n    command: ./gradlew\n    dir: %q\n", t.TempDir()))

	res := runCLI(t, "--config-dir", cfgDir, "run", "bootRun", "--dry-run")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "env: inherited unchanged\n")
}

func TestRun_UnknownTask(t *testing.T) {
	cfgDir := projectWithConfig(t, "")

	res := runCLI(t, "--config-dir", cfgDir, "run", "ghost")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "unknown task")
}

func TestSplashSimulate(t *testing.T) {
	cfgDir := projectWithConfig(t, "splash:\n  delay: 0s\n  duration: 32ms\n")

	res := runCLI(t, "--config-dir", cfgDir, "splash", "simulate")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	out := res.stdout
	assert.Contains(t, out, "window background #0F7B64\n")
	assert.Contains(t, out, "logo SplashLogo at (135,362) 120x120")
	assert.Contains(t, out, "call ping -> not-implemented\n")
	assert.Equal(t, 2, strings.Count(out, "call hide -> success\n"))
	assert.Equal(t, 1, strings.Count(out, "overlay detached\n"))
	assert.Contains(t, out, "opacity 0.00\n")

	presented := strings.Index(out, "state presented")
	dismissing := strings.Index(out, "state dismissing")
	removed := strings.Index(out, "state removed")
	require.True(t, presented >= 0 && dismissing > presented && removed > dismissing, out)
}

func TestSplashSimulate_NoHide(t *testing.T) {
	cfgDir := projectWithConfig(t, "")

	res := runCLI(t, "--config-dir", cfgDir, "splash", "simulate", "--call", "ping", "--no-logo")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "no logo")
	assert.Contains(t, res.stdout, "overlay still presented")
	assert.NotContains(t, res.stdout, "overlay detached")
}
