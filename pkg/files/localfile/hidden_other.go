//go:build !windows

package localfile

import (
	"path/filepath"
	"strings"
)

// IsHidden follows the Unix convention: a leading dot hides the entry.
func (s *Store) IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
