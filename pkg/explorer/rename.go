package explorer

import (
	"fmt"
	"path"
)

// RenameSelection renames the selected item. The operation applies
// only when exactly one item is selected.
func (e *Explorer) RenameSelection() {
	paths := e.selectionPaths()
	if len(paths) == 0 {
		return
	}
	if len(paths) > 1 {
		e.fe.MakeErrorMessage("Error", "Please select exactly one item to rename.")
		return
	}
	oldPath := paths[0]
	oldName := path.Base(oldPath)

	newName, ok := e.fe.MakeTextInputMessage("Rename", fmt.Sprintf("Enter new name for %s:", oldName))
	if !ok || newName == "" || newName == oldName {
		return
	}

	fs := e.FS()
	newPath := fs.AbsolutePath(e.currentPath, newName)
	if fs.PathExists(e.ctx, newPath) {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("The name %s is already taken.", newName))
		return
	}
	if err := fs.Rename(e.ctx, oldPath, newPath); err != nil {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to rename %s: %v", oldName, err))
		return
	}
	e.folderChanged.Produce()
}
