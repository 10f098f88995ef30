// Package cli runs cobra commands in tests and captures their output.
package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// CommandResult captures the output and error from a command execution.
type CommandResult struct {
	Stdout string
	Stderr string
	Err    error
}

// Run executes a cobra command with the given arguments and captures output.
//
//	result := cli.Run(newRootCmd(), "countdown", "--once")
//	result.AssertSuccess(t)
//	result.AssertContains(t, "días")
func Run(cmd *cobra.Command, args ...string) *CommandResult {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
}

// AssertSuccess fails the test if the command returned an error.
func (r *CommandResult) AssertSuccess(t *testing.T) {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("expected command to succeed, got error: %v\nstdout: %s\nstderr: %s",
			r.Err, r.Stdout, r.Stderr)
	}
}

// AssertError fails the test if the command did not return an error.
func (r *CommandResult) AssertError(t *testing.T) {
	t.Helper()
	if r.Err == nil {
		t.Fatalf("expected command to fail, but it succeeded\nstdout: %s", r.Stdout)
	}
}

func (r *CommandResult) AssertContains(t *testing.T, expected string) {
	t.Helper()
	if !strings.Contains(r.Stdout, expected) {
		t.Errorf("expected stdout to contain %q, got:\n%s", expected, r.Stdout)
	}
}

func (r *CommandResult) AssertNotContains(t *testing.T, unexpected string) {
	t.Helper()
	if strings.Contains(r.Stdout, unexpected) {
		t.Errorf("expected stdout NOT to contain %q, got:\n%s", unexpected, r.Stdout)
	}
}

// AssertCount fails the test if stdout does not contain substr exactly n times.
func (r *CommandResult) AssertCount(t *testing.T, substr string, n int) {
	t.Helper()
	if got := strings.Count(r.Stdout, substr); got != n {
		t.Errorf("expected %d occurrences of %q in stdout, got %d:\n%s", n, substr, got, r.Stdout)
	}
}
