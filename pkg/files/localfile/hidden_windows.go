//go:build windows

package localfile

import (
	"golang.org/x/sys/windows"
)

// IsHidden consults the hidden attribute bit. A path that cannot be
// stat'ed is reported as not hidden.
func (s *Store) IsHidden(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
