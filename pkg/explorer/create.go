package explorer

import (
	"errors"
	"fmt"

	"github.com/fileway/fileway/pkg/files"
)

// CreateFolderPrompt asks for a name and creates the folder in the
// current path.
func (e *Explorer) CreateFolderPrompt() {
	name, ok := e.fe.MakeTextInputMessage("Create Folder", "Enter folder name:")
	if !ok || name == "" {
		return
	}
	fs := e.FS()
	target := fs.AbsolutePath(e.currentPath, name)
	if err := fs.CreateFolder(e.ctx, target); err != nil {
		if errors.Is(err, files.ErrAlreadyExists) {
			e.fe.MakeErrorMessage("Error", fmt.Sprintf("The folder %s already exists.", name))
			return
		}
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to create folder %s: %v", name, err))
		return
	}
	e.folderChanged.Produce()
}

// CreateEmptyFilePrompt asks for a name and creates an empty file in
// the current path. An existing file is never truncated.
func (e *Explorer) CreateEmptyFilePrompt() {
	name, ok := e.fe.MakeTextInputMessage("Create Empty File", "Enter file name:")
	if !ok || name == "" {
		return
	}
	fs := e.FS()
	target := fs.AbsolutePath(e.currentPath, name)
	if fs.PathExists(e.ctx, target) {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("The file %s already exists.", name))
		return
	}
	if err := fs.CreateFile(e.ctx, target, nil); err != nil {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to create file %s: %v", name, err))
		return
	}
	e.folderChanged.Produce()
}
