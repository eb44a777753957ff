package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRunner creates a runner against a fresh temp dir, skipping the test
// entirely when git is not installed.
func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}

	setCommitIdentity(t)

	runner, err := NewRunner(t.TempDir())
	require.NoError(t, err)
	return runner
}

// setCommitIdentity points git at a throwaway identity so commits work in
// environments with no user configuration.
func setCommitIdentity(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "gitstart test")
	t.Setenv("GIT_AUTHOR_EMAIL", "gitstart@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "gitstart test")
	t.Setenv("GIT_COMMITTER_EMAIL", "gitstart@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

// initBareRemote creates a bare repository usable as a push target.
func initBareRemote(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--bare", dir)
	require.NoError(t, cmd.Run())
	return dir
}

func TestRunnerInitCreatesRepository(t *testing.T) {
	runner := newTestRunner(t)

	require.NoError(t, runner.Init())

	info, err := os.Stat(filepath.Join(runner.Dir, ".git"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunnerCommitFlow(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())
	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir, "hello.txt"), []byte("hello\n"), 0o644))

	require.NoError(t, runner.AddAll())
	require.NoError(t, runner.Commit("first commit"))

	out, err := runner.run("rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestRunnerCommitNothingToCommit(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())

	err := runner.Commit("first commit")

	require.Error(t, err)
	assert.True(t, isNothingToCommit(err), "expected a nothing-to-commit failure, got: %v", err)
}

func TestRunnerRenameBranch(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())
	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir, "hello.txt"), []byte("hello\n"), 0o644))
	require.NoError(t, runner.AddAll())
	require.NoError(t, runner.Commit("first commit"))

	require.NoError(t, runner.RenameBranch("main"))

	branch, err := runner.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestRunnerAddRemote(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())

	require.NoError(t, runner.AddRemote("origin", "https://github.com/user/repo.git"))

	remotes, err := runner.Remotes()
	require.NoError(t, err)
	assert.Equal(t, []string{"origin"}, remotes)

	// Registering the same name again fails and is classified as such
	err = runner.AddRemote("origin", "https://github.com/user/other.git")
	require.Error(t, err)
	assert.True(t, isRemoteExists(err), "expected an already-exists failure, got: %v", err)
}

func TestRunnerPushToBareRemote(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())
	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir, "hello.txt"), []byte("hello\n"), 0o644))
	require.NoError(t, runner.AddAll())
	require.NoError(t, runner.Commit("first commit"))
	require.NoError(t, runner.RenameBranch("main"))

	remote := initBareRemote(t)
	require.NoError(t, runner.AddRemote("origin", remote))

	require.NoError(t, runner.Push("origin", "main"))

	// Upstream tracking is set for a later plain push
	out, err := runner.run("rev-parse", "--abbrev-ref", "main@{upstream}")
	require.NoError(t, err)
	assert.Equal(t, "origin/main", strings.TrimSpace(out))
}

func TestRunnerPullRebaseFromEmptyRemoteFails(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.Init())
	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir, "hello.txt"), []byte("hello\n"), 0o644))
	require.NoError(t, runner.AddAll())
	require.NoError(t, runner.Commit("first commit"))
	require.NoError(t, runner.RenameBranch("main"))
	require.NoError(t, runner.AddRemote("origin", initBareRemote(t)))

	err := runner.PullRebase("origin", "main")

	var gitErr *GitError
	require.ErrorAs(t, err, &gitErr)
	assert.NotZero(t, gitErr.ExitCode)
}

func TestRunnerPullRebaseFromSeededRemote(t *testing.T) {
	// A remote created with pre-existing content: the unrelated histories are
	// rebased together instead of failing.
	seed := newTestRunner(t)
	require.NoError(t, seed.Init())
	require.NoError(t, os.WriteFile(filepath.Join(seed.Dir, "README.md"), []byte("# seeded\n"), 0o644))
	require.NoError(t, seed.AddAll())
	require.NoError(t, seed.Commit("seed commit"))
	require.NoError(t, seed.RenameBranch("main"))

	remote := initBareRemote(t)
	require.NoError(t, seed.AddRemote("origin", remote))
	require.NoError(t, seed.Push("origin", "main"))

	runner, err := NewRunner(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, runner.Init())
	require.NoError(t, os.WriteFile(filepath.Join(runner.Dir, "hello.txt"), []byte("hello\n"), 0o644))
	require.NoError(t, runner.AddAll())
	require.NoError(t, runner.Commit("first commit"))
	require.NoError(t, runner.RenameBranch("main"))
	require.NoError(t, runner.AddRemote("origin", remote))

	require.NoError(t, runner.PullRebase("origin", "main"))

	out, err := runner.run("rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(out))
}

func TestGitErrorMessageUsesStderr(t *testing.T) {
	err := &GitError{
		Args:     []string{"commit", "-m", "first commit"},
		ExitCode: 1,
		Stderr:   "fatal: something broke\nmore detail\n",
		err:      errors.New("exit status 1"),
	}

	assert.Equal(t, "git commit: fatal: something broke", err.Error())
}

func TestGitErrorMessageFallsBackToWrappedError(t *testing.T) {
	err := &GitError{
		Args: []string{"push"},
		err:  errors.New("exit status 128"),
	}

	assert.Equal(t, "git push: exit status 128", err.Error())
}

func TestOutputClassifiers(t *testing.T) {
	tests := []struct {
		name    string
		stderr  string
		matcher func(error) bool
	}{
		{
			name:    "nothing to commit on stdout",
			stderr:  "",
			matcher: isNothingToCommit,
		},
		{
			name:    "remote already exists",
			stderr:  "error: remote origin already exists.",
			matcher: isRemoteExists,
		},
		{
			name:    "auth failure",
			stderr:  "fatal: Authentication failed for 'https://github.com/user/repo.git/'",
			matcher: isAuthFailure,
		},
		{
			name:    "permission denied",
			stderr:  "git@github.com: Permission denied (publickey).",
			matcher: isAuthFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gitErr := &GitError{
				Args:   []string{"push"},
				Stderr: tt.stderr,
				Stdout: "nothing to commit, working tree clean",
				err:    errors.New("exit status 1"),
			}
			assert.True(t, tt.matcher(gitErr))
		})
	}

	assert.False(t, isAuthFailure(nil))
	assert.False(t, isRemoteExists(errors.New("some other failure")))
}
