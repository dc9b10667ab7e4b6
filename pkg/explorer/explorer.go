package explorer

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fileway/fileway/pkg/events"
	"github.com/fileway/fileway/pkg/files"
	"github.com/fileway/fileway/pkg/frontend"
	"github.com/fileway/fileway/pkg/fwsettings"
	"github.com/fileway/fileway/pkg/fwstate"
)

// DisplayMode is the details-pane mode: ordinary browsing or a
// filtered recursive search view.
type DisplayMode string

const (
	ModeList   DisplayMode = "LIST"
	ModeSearch DisplayMode = "SEARCH"
)

const (
	MinFontSize = 4
	MaxFontSize = 40
)

var saveCurrentLocation = fwstate.SaveCurrentLocation
var saveSelectedItem = fwstate.SaveSelectedItem

// Explorer owns the browsing state: current mount, current path,
// display mode, bookmarks and clipboard. It reacts to frontend
// callbacks and fans out state changes over the event bus. All methods
// run on the single UI goroutine.
type Explorer struct {
	cfg      fwsettings.Config
	fe       frontend.Frontend
	registry *files.Registry
	bus      *events.Bus
	ctx      context.Context
	log      zerolog.Logger

	pathChanged   *events.Event
	folderChanged *events.Event
	modeChanged   *events.Event

	currentMount string
	currentPath  string
	mode         DisplayMode
	searchTerm   string

	bookmarks []frontend.Bookmark
	clipboard []clipboardItem

	menuItems []frontend.ContextMenuItem
	openMenu  frontend.ContextMenu
}

func New(cfg fwsettings.Config, fe frontend.Frontend, registry *files.Registry, initialPath string) (*Explorer, error) {
	root, ok := registry.Get(files.RootMountName)
	if !ok {
		return nil, fmt.Errorf("registry has no %q mount", files.RootMountName)
	}

	bus := events.NewBus()
	e := &Explorer{
		cfg:           cfg,
		fe:            fe,
		registry:      registry,
		bus:           bus,
		ctx:           context.Background(),
		log:           log.With().Str("component", "explorer").Logger(),
		pathChanged:   bus.Register(events.CurrentPathChanged),
		folderChanged: bus.Register(events.CurrentFolderChanged),
		modeChanged:   bus.Register(events.DisplayModeChanged),
		currentMount:  files.RootMountName,
		mode:          ModeList,
	}

	if initialPath == "" {
		initialPath = root.Root()
	}
	e.currentPath = e.normalizePath(initialPath)

	e.loadBookmarks()
	e.registerContextMenuItems()

	fe.CreateURLPane()
	fe.CreateNavigationPane()
	fe.CreateDetailsPane()

	e.pathChanged.ConsumedBy(e.updateTitle)
	e.pathChanged.ConsumedBy(e.reloadDetails)
	e.pathChanged.ConsumedBy(e.refreshNavigationPane)
	e.pathChanged.ConsumedBy(e.refreshURLBar)
	e.pathChanged.ConsumedBy(e.persistLocation)

	e.folderChanged.ConsumedBy(e.reloadDetailsKeepSelection)

	e.modeChanged.ConsumedBy(e.refreshURLBar)
	e.modeChanged.ConsumedBy(e.reloadDetails)

	fe.OnItemActivated(e.OpenItem)
	fe.OnBookmarkActivated(e.NavigateToBookmark)
	fe.OnMountActivated(e.NavigateToMount)
	fe.OnContextMenuRequested(e.ShowContextMenu)
	e.bindKeys()

	e.folderChanged.Produce()
	e.pathChanged.Produce()

	return e, nil
}

// Run hands control to the frontend's event loop.
func (e *Explorer) Run() error {
	return e.fe.Run()
}

// FS returns the currently selected mount.
func (e *Explorer) FS() files.FileSystem {
	fs, _ := e.registry.Get(e.currentMount)
	return fs
}

func (e *Explorer) CurrentPath() string { return e.currentPath }

func (e *Explorer) CurrentMount() string { return e.currentMount }

func (e *Explorer) Mode() DisplayMode { return e.mode }

// SetCurrentPath navigates to an existing directory. An invalid
// target produces an error dialog and leaves the state unchanged.
func (e *Explorer) SetCurrentPath(target string) {
	fs := e.FS()
	target = e.normalizePath(target)
	if !fs.PathExists(e.ctx, target) {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("The path %s does not exist or is not a directory.", target))
		return
	}
	if entry, err := fs.GetFileOrFolder(e.ctx, target); err == nil && !entry.IsDir() && target != fs.Root() {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("The path %s does not exist or is not a directory.", target))
		return
	}
	e.currentPath = target
	if e.mode == ModeSearch {
		e.mode = ModeList
		e.searchTerm = ""
		e.modeChanged.Produce()
	}
	e.pathChanged.Produce()
}

// SetCurrentMount switches to another named file system and resets
// the path to that mount's root.
func (e *Explorer) SetCurrentMount(name string) {
	fs, ok := e.registry.Get(name)
	if !ok {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("Unknown file system %q.", name))
		return
	}
	e.currentMount = name
	e.currentPath = fs.Root()
	if e.mode == ModeSearch {
		e.mode = ModeList
		e.searchTerm = ""
		e.modeChanged.Produce()
	}
	e.pathChanged.Produce()
}

// OpenItem opens a details-pane entry by name: folders become the
// current path, files are ignored.
func (e *Explorer) OpenItem(name string) {
	fs := e.FS()
	target := fs.AbsolutePath(e.currentPath, name)
	entry, err := fs.GetFileOrFolder(e.ctx, target)
	if err != nil || !entry.IsDir() {
		return
	}
	e.SetCurrentPath(target)
}

// GoUp ascends one level, staying within the mount.
func (e *Explorer) GoUp() {
	fs := e.FS()
	up := fs.GoUp(e.currentPath)
	if up == e.currentPath {
		return
	}
	if fs.PathExists(e.ctx, up) {
		e.SetCurrentPath(up)
	}
}

// ToggleHiddenFiles flips hidden-file visibility and refreshes the
// listing.
func (e *Explorer) ToggleHiddenFiles() {
	e.cfg.ShowHiddenFiles = !e.cfg.ShowHiddenFiles
	e.log.Info().Bool("show_hidden", e.cfg.ShowHiddenFiles).Msg("toggled hidden files visibility")
	e.folderChanged.Produce()
}

func (e *Explorer) IncreaseFontSize() {
	if e.cfg.FontSize < MaxFontSize {
		e.cfg.FontSize++
		e.fe.UpdateFont(e.cfg.Font, e.cfg.FontSize)
	}
}

func (e *Explorer) DecreaseFontSize() {
	if e.cfg.FontSize > MinFontSize {
		e.cfg.FontSize--
		e.fe.UpdateFont(e.cfg.Font, e.cfg.FontSize)
	}
}

// selectionPaths resolves the details-pane selection to absolute
// paths within the current mount.
func (e *Explorer) selectionPaths() []string {
	fs := e.FS()
	names := e.fe.DetailsSelection()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, fs.AbsolutePath(e.currentPath, name))
	}
	return paths
}

func (e *Explorer) updateTitle() {
	title := strings.ReplaceAll(e.cfg.Window.Title, "{current_path}", e.currentPath)
	e.fe.SetWindowTitle(title)
}

func (e *Explorer) refreshURLBar() {
	if e.mode == ModeSearch {
		e.fe.SetURLBarText("Search:", e.searchTerm)
		return
	}
	e.fe.SetURLBarText("Location:", e.currentPath)
}

func (e *Explorer) refreshNavigationPane() {
	e.fe.SetNavigationItems(e.bookmarks, e.registry.Names())
	e.fe.HighlightBookmark(e.currentPath)
}

func (e *Explorer) persistLocation() {
	saveCurrentLocation(e.currentMount, e.currentPath)
}

func (e *Explorer) reloadDetails() {
	e.loadDetails("")
}

func (e *Explorer) reloadDetailsKeepSelection() {
	var keep string
	if selection := e.fe.DetailsSelection(); len(selection) > 0 {
		keep = selection[0]
	}
	e.loadDetails(keep)
}

// loadDetails lists the current path (or runs the active search),
// sorts folders-first, drops hidden entries unless enabled, and hands
// the result to the details pane.
func (e *Explorer) loadDetails(selectItem string) {
	fs := e.FS()
	var entries []files.Entry
	var err error
	if e.mode == ModeSearch {
		entries, err = e.searchEntries(fs)
	} else {
		entries, err = fs.ListContents(e.ctx, e.currentPath, false)
	}
	if err != nil {
		e.fe.MakeErrorMessage("Error", fmt.Sprintf("Failed to list %s: %v", e.currentPath, err))
		return
	}
	if !e.cfg.ShowHiddenFiles {
		visible := entries[:0]
		for _, entry := range entries {
			if !fs.IsHidden(entry.Path()) {
				visible = append(visible, entry)
			}
		}
		entries = visible
	}
	files.SortEntries(entries)
	e.fe.SetDetailsContents(entries, selectItem)
	if selectItem != "" {
		saveSelectedItem(selectItem)
	}
}

// normalizePath cleans the path with the separator rules of the
// current mount's backend.
func (e *Explorer) normalizePath(p string) string {
	if e.FS().Type() == "local" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return filepath.Clean(p)
		}
		return abs
	}
	return path.Clean(p)
}
