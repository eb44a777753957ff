package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var useCurrent bool

var rootCmd = &cobra.Command{
	Use:   "gitstart",
	Short: "Bootstrap a directory into a git repo published to a remote",
	Long: `gitstart initializes a new repository and publishes it in one shot.

It will:
  - Initialize a git repo
  - Add a .gitignore (from ignore.txt if present)
  - Add all files and make the first commit
  - Set the branch to the primary branch name
  - Add a remote
  - Push with upstream tracking set

Use --current to skip the directory prompt and use the current working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveTargetDir(useCurrent)
		if err != nil {
			return err
		}

		setup, err := NewSetup(dir, LoadConfig())
		if err != nil {
			return err
		}
		return setup.Run()
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&useCurrent, "current", "c", false,
		"Use the current working directory instead of prompting")
}

// resolveTargetDir picks the directory to provision, either the working
// directory or an interactively supplied path.
func resolveTargetDir(useCurrent bool) (string, error) {
	if useCurrent {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not determine working directory: %w", err)
		}
		printStep("Using current working directory %s", dir)
		return validateTargetDir(dir)
	}

	answer, err := askInput("Enter the directory to initialize as a git repo:", "")
	if err != nil {
		return "", err
	}
	return validateTargetDir(answer)
}

// validateTargetDir resolves path to an absolute path and requires it to name
// an existing directory. Nothing is mutated before this check passes.
func validateTargetDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("directory does not exist: %s", abs)
	}
	return abs, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
