package explorer

import (
	"github.com/fileway/fileway/pkg/frontend"
)

// registerContextMenuItems declares every context-menu item the
// application knows. The configuration decides which of them show up
// and in what order.
func (e *Explorer) registerContextMenuItems() {
	e.menuItems = []frontend.ContextMenuItem{
		{
			Name:   "CREATE_FOLDER",
			Label:  "Create folder",
			Action: func([]string) { e.CreateFolderPrompt() },
		},
		{
			Name:   "CREATE_FILE",
			Label:  "Create empty file",
			Action: func([]string) { e.CreateEmptyFilePrompt() },
		},
		{
			Name:     "RENAME",
			Label:    "Rename...",
			Action:   func([]string) { e.RenameSelection() },
			IsActive: func(selection []string) bool { return len(selection) == 1 },
		},
		{
			Name:     "PROPERTIES",
			Label:    "Properties",
			Action:   func([]string) { e.ShowProperties() },
			IsActive: func(selection []string) bool { return len(selection) > 0 },
		},
	}
}

// menuItem looks up a registered item by its stable name.
func (e *Explorer) menuItem(name string) (frontend.ContextMenuItem, bool) {
	for _, item := range e.menuItems {
		if item.Name == name {
			return item, true
		}
	}
	return frontend.ContextMenuItem{}, false
}

// ShowContextMenu opens the context menu at the event position,
// showing the configured items that are active for the current
// selection.
func (e *Explorer) ShowContextMenu(ev frontend.FeEvent) {
	if e.openMenu != nil {
		e.openMenu.Close()
		e.openMenu = nil
	}
	selection := e.selectionPaths()
	items := make([]frontend.ContextMenuItem, 0, len(e.cfg.ContextMenu))
	for _, name := range e.cfg.ContextMenu {
		item, ok := e.menuItem(name)
		if !ok {
			e.log.Warn().Str("item", name).Msg("unknown context menu item in configuration")
			continue
		}
		if item.IsActive != nil && !item.IsActive(selection) {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}
	menu := e.fe.MakeContextMenu(items, selection)
	menu.Post(ev.MouseX, ev.MouseY)
	e.openMenu = menu
}
