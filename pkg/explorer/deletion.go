package explorer

import (
	"fmt"
	"path"
)

// DeleteSelection removes the selected items one by one. Each item is
// confirmed separately, and a failure on one item does not stop the
// remaining deletions.
func (e *Explorer) DeleteSelection() {
	paths := e.selectionPaths()
	if len(paths) == 0 {
		return
	}
	fs := e.FS()
	deleted := 0
	for _, target := range paths {
		name := path.Base(target)
		if !e.fe.MakeOkCancelMessage("Delete", fmt.Sprintf("Are you sure you want to delete %s?", name)) {
			continue
		}
		if err := fs.Delete(e.ctx, target); err != nil {
			e.log.Error().Err(err).Str("path", target).Msg("delete failed")
			e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to delete %s: %v", name, err))
			continue
		}
		deleted++
	}
	if deleted > 0 {
		e.folderChanged.Produce()
	}
}
