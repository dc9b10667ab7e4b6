package explorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/fileway/fileway/pkg/fsutils"
)

const modTimeFormat = "2006-01-02 15:04"

// ShowProperties displays a summary of the selected items: a detailed
// view for a single item, aggregated totals for several.
func (e *Explorer) ShowProperties() {
	paths := e.selectionPaths()
	if len(paths) == 0 {
		return
	}
	fs := e.FS()

	if len(paths) == 1 {
		entry, err := fs.GetFileOrFolder(e.ctx, paths[0])
		if err != nil {
			e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to read properties: %v", err))
			return
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Name: %s\n", entry.Name())
		fmt.Fprintf(&b, "Path: %s\n", entry.Path())
		if entry.IsDir() {
			b.WriteString("Type: Folder\n")
		} else {
			b.WriteString("Type: File\n")
		}
		if size, ok := entry.Size(); ok {
			fmt.Fprintf(&b, "Size: %s\n", fsutils.GetSizeShortText(size))
		}
		if mod, ok := entry.ModTime(); ok {
			fmt.Fprintf(&b, "Modified: %s\n", mod.Format(modTimeFormat))
		}
		e.fe.MakeInfoMessage("Properties", b.String())
		return
	}

	var totalSize int64
	var oldest, newest time.Time
	folders, regular := 0, 0
	for _, p := range paths {
		entry, err := fs.GetFileOrFolder(e.ctx, p)
		if err != nil {
			e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to read properties: %v", err))
			return
		}
		if entry.IsDir() {
			folders++
		} else {
			regular++
		}
		if size, ok := entry.Size(); ok {
			totalSize += size
		}
		if mod, ok := entry.ModTime(); ok {
			if oldest.IsZero() || mod.Before(oldest) {
				oldest = mod
			}
			if mod.After(newest) {
				newest = mod
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Items: %d (%d folders, %d files)\n", len(paths), folders, regular)
	fmt.Fprintf(&b, "Total size: %s\n", fsutils.GetSizeShortText(totalSize))
	if !oldest.IsZero() {
		fmt.Fprintf(&b, "Oldest modified: %s\n", oldest.Format(modTimeFormat))
		fmt.Fprintf(&b, "Newest modified: %s\n", newest.Format(modTimeFormat))
	}
	e.fe.MakeInfoMessage("Properties", b.String())
}
