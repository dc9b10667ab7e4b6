package explorer

import (
	"github.com/fileway/fileway/pkg/frontend"
)

// bindKeys wires the configured keyboard shortcuts to their actions.
func (e *Explorer) bindKeys() {
	keys := e.cfg.Keys
	bind := func(combo string, action func()) {
		if combo == "" {
			return
		}
		e.fe.BindKeyboardShortcut(combo, func(frontend.FeEvent) { action() })
	}

	bind(keys.FontSizeIncrease, e.IncreaseFontSize)
	bind(keys.FontSizeDecrease, e.DecreaseFontSize)
	bind(keys.RenameItem, e.RenameSelection)
	bind(keys.Search, e.PromptSearch)
	bind(keys.ExitSearch, e.HandleEscape)
	bind(keys.GoUp, e.GoUp)
	bind(keys.Delete, e.DeleteSelection)
	bind(keys.CreateFolder, e.CreateFolderPrompt)
	bind(keys.CopySelection, e.CopySelection)
	bind(keys.Paste, e.Paste)
	bind(keys.ToggleHiddenFileVisibility, e.ToggleHiddenFiles)

	if keys.OpenContextMenu != "" {
		e.fe.BindKeyboardShortcut(keys.OpenContextMenu, e.ShowContextMenu)
	}
}
