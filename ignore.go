package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ignoreFileName     = ".gitignore"
	ignoreTemplateName = "ignore.txt"
)

// softResult is the outcome of a step whose failure is reported as a warning
// but never aborts the run.
type softResult struct {
	OK     bool
	Detail string
}

// ensureIgnoreFile guarantees a .gitignore exists in dir. An existing file is
// left untouched.
func ensureIgnoreFile(dir string) error {
	f, err := os.OpenFile(filepath.Join(dir, ignoreFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", ignoreFileName, err)
	}
	return f.Close()
}

// defaultIgnoreTemplate returns the path of the ignore template expected next
// to the gitstart executable.
func defaultIgnoreTemplate() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), ignoreTemplateName), nil
}

// populateIgnoreFile overwrites dir's .gitignore with the template contents.
// A missing or unreadable template is a soft failure and the ignore file stays
// as it is. templatePath overrides the executable-adjacent default when set.
func populateIgnoreFile(dir, templatePath string) softResult {
	if templatePath == "" {
		var err error
		templatePath, err = defaultIgnoreTemplate()
		if err != nil {
			return softResult{Detail: fmt.Sprintf("could not locate executable: %v, %s will be empty", err, ignoreFileName)}
		}
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return softResult{Detail: fmt.Sprintf("%s not found in %s, %s will be empty", ignoreTemplateName, filepath.Dir(templatePath), ignoreFileName)}
		}
		return softResult{Detail: fmt.Sprintf("could not read %s: %v", templatePath, err)}
	}

	if err := os.WriteFile(filepath.Join(dir, ignoreFileName), data, 0o644); err != nil {
		return softResult{Detail: fmt.Sprintf("could not write %s: %v", ignoreFileName, err)}
	}
	return softResult{OK: true}
}
