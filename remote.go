package main

import (
	"fmt"
	"strings"
)

// Recognized remote location prefixes. Anything else is rejected before a
// remote is configured.
const (
	httpsPrefix = "https://"
	sshPrefix   = "git@"
)

// validateRemoteLocation checks that the remote location carries a recognized
// scheme prefix.
func validateRemoteLocation(location string) error {
	if strings.HasPrefix(location, httpsPrefix) || strings.HasPrefix(location, sshPrefix) {
		return nil
	}
	return fmt.Errorf("invalid remote location %q: must start with %s or %s", location, httpsPrefix, sshPrefix)
}

// displayName derives a human-readable repository name from a remote location.
// Exactly one trailing slash and one trailing .git suffix are stripped before
// taking the last segment; scp-style locations split on ':' as well.
func displayName(location string) string {
	name := strings.TrimSuffix(location, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
