package explorer

import (
	"fmt"
	"path"

	"github.com/fileway/fileway/pkg/files"
)

// clipboardItem remembers where a copied entry lives, so a paste can
// read it back even after switching mounts.
type clipboardItem struct {
	mount string
	path  string
}

// CopySelection records the selected items on the internal clipboard.
func (e *Explorer) CopySelection() {
	paths := e.selectionPaths()
	if len(paths) == 0 {
		return
	}
	e.clipboard = e.clipboard[:0]
	for _, p := range paths {
		e.clipboard = append(e.clipboard, clipboardItem{mount: e.currentMount, path: p})
	}
	e.log.Debug().Int("items", len(e.clipboard)).Msg("copied selection to clipboard")
}

// Paste copies the clipboard items into the current path. Pasting an
// item onto itself is skipped; a failure on one item does not stop the
// rest.
func (e *Explorer) Paste() {
	if len(e.clipboard) == 0 {
		return
	}
	dst := e.FS()
	pasted := 0
	for _, item := range e.clipboard {
		src, ok := e.registry.Get(item.mount)
		if !ok {
			e.log.Warn().Str("mount", item.mount).Msg("clipboard mount no longer registered")
			continue
		}
		name := path.Base(item.path)
		target := dst.AbsolutePath(e.currentPath, name)
		if item.mount == e.currentMount && target == item.path {
			e.log.Debug().Str("path", item.path).Msg("skipping paste onto itself")
			continue
		}
		if err := e.copyEntry(src, dst, item.path, target); err != nil {
			e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to paste %s: %v", name, err))
			continue
		}
		pasted++
	}
	if pasted > 0 {
		e.folderChanged.Produce()
	}
}

// copyEntry copies a file or a whole folder tree between (possibly
// different) mounts, going through the file-system abstraction only.
func (e *Explorer) copyEntry(src, dst files.FileSystem, srcPath, dstPath string) error {
	entry, err := src.GetFileOrFolder(e.ctx, srcPath)
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		contents, err := src.ReadFile(e.ctx, srcPath)
		if err != nil {
			return err
		}
		return dst.CreateFile(e.ctx, dstPath, contents)
	}
	if err := dst.CreateFolder(e.ctx, dstPath); err != nil {
		return err
	}
	children, err := src.ListContents(e.ctx, srcPath, false)
	if err != nil {
		return err
	}
	for _, child := range children {
		childDst := dst.AbsolutePath(dstPath, child.Name())
		if err := e.copyEntry(src, dst, child.Path(), childDst); err != nil {
			return err
		}
	}
	return nil
}
