package cli

import (
	"fmt"
	"os"
	"strings"
)

// loadChangelog returns the contents of input when it names a regular
// file, and input itself otherwise.
func loadChangelog(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	info, err := os.Stat(input)
	if err != nil || !info.Mode().IsRegular() {
		return input, nil
	}
	return readChangelogFile(input)
}

// readChangelogFile reads a changelog that must exist.
func readChangelogFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read changelog: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
