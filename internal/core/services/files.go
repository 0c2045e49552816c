package services

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/feds01/cs3099/internal/core/domain"
)

// ValidateArchive checks that path is a readable zip container.
// The entries themselves are not inspected.
func ValidateArchive(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNotArchive, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrNotArchive, path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNotArchive, path, err)
	}
	return r.Close()
}
