package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable names used by the setup sequence.
type Config struct {
	PrimaryBranch  string `yaml:"primary_branch"`
	RemoteName     string `yaml:"remote_name"`
	CommitMessage  string `yaml:"commit_message"`
	IgnoreTemplate string `yaml:"ignore_template"`
}

const configFileName = ".gitstart.yaml"

// DefaultConfig returns the built-in names the setup sequence standardizes on.
func DefaultConfig() *Config {
	return &Config{
		PrimaryBranch: "main",
		RemoteName:    "origin",
		CommitMessage: "first commit",
	}
}

// LoadConfig loads ~/.gitstart.yaml over the defaults. A missing or unreadable
// file just yields the defaults.
func LoadConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig()
	}
	return loadConfigFrom(filepath.Join(home, configFileName))
}

func loadConfigFrom(path string) *Config {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// Keys set to empty strings fall back to the defaults
	defaults := DefaultConfig()
	if config.PrimaryBranch == "" {
		config.PrimaryBranch = defaults.PrimaryBranch
	}
	if config.RemoteName == "" {
		config.RemoteName = defaults.RemoteName
	}
	if config.CommitMessage == "" {
		config.CommitMessage = defaults.CommitMessage
	}

	return config
}
