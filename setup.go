package main

import (
	"fmt"
)

// Setup runs the provisioning sequence against one target directory. The
// sequence is strictly linear: every step except the remote sync is terminal
// on failure, and completed steps are never rolled back.
type Setup struct {
	Config *Config
	Runner *Runner

	// RemoteLocation, when set, is used instead of prompting for it.
	RemoteLocation string

	// Prompt reads one line of interactive input.
	Prompt func(question, placeholder string) (string, error)
}

// NewSetup creates the orchestrator for the given target directory.
func NewSetup(targetDir string, config *Config) (*Setup, error) {
	runner, err := NewRunner(targetDir)
	if err != nil {
		return nil, err
	}
	return &Setup{
		Config: config,
		Runner: runner,
		Prompt: askInput,
	}, nil
}

// Run executes the full sequence, stopping at the first unrecoverable failure.
func (s *Setup) Run() error {
	dir := s.Runner.Dir
	config := s.Config

	printStep("Initializing git repository in %s", dir)
	if err := s.Runner.Init(); err != nil {
		return fmt.Errorf("could not initialize repository: %w", err)
	}

	printStep("Creating %s file", ignoreFileName)
	if err := ensureIgnoreFile(dir); err != nil {
		return err
	}

	if result := populateIgnoreFile(dir, config.IgnoreTemplate); result.OK {
		printStep("Copied %s to %s", ignoreTemplateName, ignoreFileName)
	} else {
		printWarning(result.Detail)
	}

	printStep("Adding all files")
	if err := s.Runner.AddAll(); err != nil {
		return fmt.Errorf("could not stage files: %w", err)
	}

	printStep("Creating initial commit")
	if err := s.Runner.Commit(config.CommitMessage); err != nil {
		if isNothingToCommit(err) {
			return fmt.Errorf("could not commit, there is nothing to commit in %s: %w", dir, err)
		}
		return fmt.Errorf("could not create initial commit: %w", err)
	}

	printStep("Setting branch to %s", config.PrimaryBranch)
	if err := s.Runner.RenameBranch(config.PrimaryBranch); err != nil {
		return fmt.Errorf("could not rename branch to %s: %w", config.PrimaryBranch, err)
	}

	location, err := s.resolveRemoteLocation()
	if err != nil {
		return err
	}

	printStep("Adding remote %s %s", config.RemoteName, location)
	if err := s.Runner.AddRemote(config.RemoteName, location); err != nil {
		if isRemoteExists(err) {
			return fmt.Errorf("could not add remote, %q may already exist: %w", config.RemoteName, err)
		}
		return fmt.Errorf("could not add remote: %w", err)
	}

	printStep("Syncing with %s/%s", config.RemoteName, config.PrimaryBranch)
	if err := s.Runner.PullRebase(config.RemoteName, config.PrimaryBranch); err != nil {
		if isAuthFailure(err) {
			printWarning("authentication to %s failed while syncing, the push will likely fail too: %v", location, err)
		} else {
			printWarning("could not pull from %s/%s, continuing (expected for an empty remote): %v",
				config.RemoteName, config.PrimaryBranch, err)
		}
	}

	printStep("Pushing to %s with upstream set", config.RemoteName)
	if err := s.Runner.Push(config.RemoteName, config.PrimaryBranch); err != nil {
		return fmt.Errorf("could not push to %s, check the location and your permissions: %w", location, err)
	}

	printSuccess("Repo %s has been set up within %s", displayName(location), dir)
	return nil
}

// resolveRemoteLocation obtains the remote location, prompting when it was not
// supplied up front, and validates its scheme prefix before any remote
// configuration happens.
func (s *Setup) resolveRemoteLocation() (string, error) {
	location := s.RemoteLocation
	if location == "" {
		answer, err := s.Prompt("Enter the remote repository URL:", "https://github.com/user/repo.git")
		if err != nil {
			return "", err
		}
		location = answer
	}

	if err := validateRemoteLocation(location); err != nil {
		return "", err
	}
	return location, nil
}
