package main

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner invokes git against a single repository directory. The directory is
// set on every command instead of changing the process working directory, so
// each operation is explicit about where it acts.
type Runner struct {
	Dir     string
	GitPath string
}

// ErrGitNotFound is returned when no git executable can be located on PATH.
var ErrGitNotFound = errors.New("git executable not found in PATH")

// NewRunner creates a runner bound to dir, locating the git executable once.
func NewRunner(dir string) (*Runner, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, ErrGitNotFound
	}
	return &Runner{Dir: dir, GitPath: gitPath}, nil
}

// GitError carries the exit status and captured output of a failed git command.
type GitError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	err      error
}

func (e *GitError) Error() string {
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		return fmt.Sprintf("git %s: %s", e.Args[0], firstLine(detail))
	}
	return fmt.Sprintf("git %s: %v", e.Args[0], e.err)
}

func (e *GitError) Unwrap() error { return e.err }

// run executes one git command in the runner's directory, capturing stdout and
// stderr separately. Failures come back as *GitError with the exit code.
func (r *Runner) run(args ...string) (string, error) {
	cmd := exec.Command(r.GitPath, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout.String(), &GitError{
			Args:     args,
			ExitCode: exitCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			err:      err,
		}
	}
	return stdout.String(), nil
}

// Init initializes a new repository in the runner's directory.
func (r *Runner) Init() error {
	_, err := r.run("init")
	return err
}

// AddAll stages every file in the repository.
func (r *Runner) AddAll() error {
	_, err := r.run("add", ".")
	return err
}

// Commit records the staged files with the given message.
func (r *Runner) Commit(message string) error {
	_, err := r.run("commit", "-m", message)
	return err
}

// RenameBranch forces the active branch to the given name.
func (r *Runner) RenameBranch(name string) error {
	_, err := r.run("branch", "-M", name)
	return err
}

// AddRemote registers a remote under the given name.
func (r *Runner) AddRemote(name, location string) error {
	_, err := r.run("remote", "add", name, location)
	return err
}

// PullRebase pulls the remote branch with a rebase, tolerating a remote whose
// history is unrelated to the local one.
func (r *Runner) PullRebase(remote, branch string) error {
	_, err := r.run("pull", "--rebase", "--allow-unrelated-histories", remote, branch)
	return err
}

// Push pushes the branch and sets its upstream tracking relationship.
func (r *Runner) Push(remote, branch string) error {
	_, err := r.run("push", "--set-upstream", remote, branch)
	return err
}

// CurrentBranch returns the name of the active branch.
func (r *Runner) CurrentBranch() (string, error) {
	out, err := r.run("branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Remotes returns the names of the configured remotes.
func (r *Runner) Remotes() ([]string, error) {
	out, err := r.run("remote")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// isNothingToCommit reports whether the failure came from a commit with an
// empty index.
func isNothingToCommit(err error) bool {
	return outputContains(err, "nothing to commit") || outputContains(err, "nothing added to commit")
}

// isRemoteExists reports whether the failure indicates the remote name is
// already registered.
func isRemoteExists(err error) bool {
	return outputContains(err, "already exists")
}

// isAuthFailure reports whether the failure looks like an authentication or
// permission problem rather than a missing ref.
func isAuthFailure(err error) bool {
	return outputContains(err, "authentication failed") ||
		outputContains(err, "permission denied") ||
		outputContains(err, "could not read username") ||
		outputContains(err, "could not read password")
}

// outputContains matches msg against the captured output of a failed git
// command. git writes some diagnostics to stdout, so both streams are checked.
func outputContains(err error, msg string) bool {
	if err == nil {
		return false
	}
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		combined := strings.ToLower(gitErr.Stderr + "\n" + gitErr.Stdout)
		return strings.Contains(combined, msg)
	}
	return strings.Contains(strings.ToLower(err.Error()), msg)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
