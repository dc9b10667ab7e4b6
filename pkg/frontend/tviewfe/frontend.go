// Package tviewfe renders the application in a terminal using tview.
package tviewfe

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fileway/fileway/pkg/files"
	"github.com/fileway/fileway/pkg/frontend"
	"github.com/fileway/fileway/pkg/fsutils"
	"github.com/fileway/fileway/pkg/fwsettings"
)

const markedPrefix = "✓"

var _ frontend.Frontend = (*Frontend)(nil)

// Frontend is the tview implementation of the UI contract. Widget
// mutations happen on the tview event loop; application callbacks are
// handed off to a single dispatch goroutine so they may block on
// dialogs.
type Frontend struct {
	cfg fwsettings.Config
	app *tview.Application
	log zerolog.Logger

	pages  *tview.Pages
	layout *tview.Flex
	body   *tview.Flex

	urlBar  *tview.TextView
	navList *tview.List
	details *tview.Table

	title    string
	urlLabel string
	urlText  string

	bookmarks []frontend.Bookmark
	mounts    []string
	entries   []files.Entry

	// Shadow of the details-pane selection state, written only on the
	// event loop and read by the dispatch goroutine. The tview table
	// itself is not goroutine-safe.
	selMu    sync.Mutex
	rowNames []string
	marks    map[int]bool
	cursor   int

	shortcuts map[shortcut]func(frontend.FeEvent)

	itemActivated     func(string)
	bookmarkActivated func(frontend.Bookmark)
	mountActivated    func(string)
	menuRequested     func(frontend.FeEvent)

	actions chan func()
	running atomic.Bool
	// modals counts open dialogs; global shortcuts are suppressed
	// while one is up.
	modals atomic.Int32

	mouseX atomic.Int32
	mouseY atomic.Int32
}

func New(cfg fwsettings.Config) *Frontend {
	return &Frontend{
		cfg:       cfg,
		app:       tview.NewApplication(),
		log:       log.With().Str("component", "tviewfe").Logger(),
		pages:     tview.NewPages(),
		shortcuts: make(map[shortcut]func(frontend.FeEvent)),
		actions:   make(chan func(), 16),
	}
}

func (f *Frontend) CreateURLPane() {
	f.urlBar = tview.NewTextView().SetDynamicColors(true)
	f.urlBar.SetBackgroundColor(tview.Styles.ContrastBackgroundColor)
}

func (f *Frontend) CreateNavigationPane() {
	f.navList = tview.NewList().ShowSecondaryText(false)
	f.navList.SetBorder(true).SetTitle("Places")
}

func (f *Frontend) CreateDetailsPane() {
	f.details = tview.NewTable().SetSelectable(true, false)
	f.details.SetBorder(true)
	f.details.SetInputCapture(f.detailsInputCapture)
	f.details.SetSelectionChangedFunc(func(row, column int) {
		f.selMu.Lock()
		f.cursor = row
		f.selMu.Unlock()
	})
	f.details.SetSelectedFunc(func(row, column int) {
		if name, ok := f.rowName(row); ok && f.itemActivated != nil {
			f.dispatch(func() { f.itemActivated(name) })
		}
	})
}

func (f *Frontend) OnItemActivated(callback func(string)) { f.itemActivated = callback }

func (f *Frontend) OnBookmarkActivated(callback func(frontend.Bookmark)) {
	f.bookmarkActivated = callback
}

func (f *Frontend) OnMountActivated(callback func(string)) { f.mountActivated = callback }

func (f *Frontend) OnContextMenuRequested(callback func(frontend.FeEvent)) {
	f.menuRequested = callback
}

func (f *Frontend) SetWindowTitle(title string) {
	f.queueDraw(func() {
		f.title = title
		if f.details != nil {
			f.details.SetTitle(" " + title + " ")
		}
	})
}

func (f *Frontend) SetURLBarText(label, text string) {
	f.queueDraw(func() {
		f.urlLabel, f.urlText = label, text
		if f.urlBar != nil {
			f.urlBar.SetText(" [::b]" + tview.Escape(label) + "[::-] " + tview.Escape(text))
		}
	})
}

func (f *Frontend) SetDetailsContents(entries []files.Entry, selectItem string) {
	f.queueDraw(func() {
		f.entries = entries
		f.details.Clear()
		selectRow := 0
		names := make([]string, 0, len(entries))
		for i, entry := range entries {
			names = append(names, entry.Name())
			nameCell := tview.NewTableCell(" " + entry.Name()).
				SetReference(entry).
				SetExpansion(1)
			if entry.IsDir() {
				nameCell.SetTextColor(tcell.ColorLightCyan)
			}
			f.details.SetCell(i, 0, nameCell)

			sizeText := ""
			if size, ok := entry.Size(); ok {
				sizeText = fsutils.GetSizeShortText(size)
			}
			f.details.SetCell(i, 1, tview.NewTableCell(sizeText).
				SetAlign(tview.AlignRight).
				SetTextColor(tcell.ColorDarkGray))

			modText := ""
			if mod, ok := entry.ModTime(); ok {
				modText = mod.Format("2006-01-02 15:04")
			}
			f.details.SetCell(i, 2, tview.NewTableCell(modText).
				SetTextColor(tcell.ColorDarkGray))

			if selectItem != "" && entry.Name() == selectItem {
				selectRow = i
			}
		}
		f.selMu.Lock()
		f.rowNames = names
		f.marks = make(map[int]bool)
		f.cursor = selectRow
		f.selMu.Unlock()
		if len(entries) > 0 {
			f.details.Select(selectRow, 0)
		}
	})
}

// DetailsSelection returns the marked entry names, or the cursor row
// when nothing is marked. It reads the shadow state, never the table:
// callers run on the dispatch goroutine.
func (f *Frontend) DetailsSelection() []string {
	f.selMu.Lock()
	defer f.selMu.Unlock()
	var names []string
	for row, name := range f.rowNames {
		if f.marks[row] {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}
	if f.cursor >= 0 && f.cursor < len(f.rowNames) {
		return []string{f.rowNames[f.cursor]}
	}
	return nil
}

func (f *Frontend) SetNavigationItems(bookmarks []frontend.Bookmark, mounts []string) {
	f.queueDraw(func() {
		f.bookmarks, f.mounts = bookmarks, mounts
		f.navList.Clear()
		for _, b := range bookmarks {
			bookmark := b
			f.navList.AddItem(bookmark.Label, bookmark.Path, 0, func() {
				if f.bookmarkActivated != nil {
					f.dispatch(func() { f.bookmarkActivated(bookmark) })
				}
			})
		}
		for _, m := range mounts {
			mount := m
			f.navList.AddItem("@ "+mount, "", 0, func() {
				if f.mountActivated != nil {
					f.dispatch(func() { f.mountActivated(mount) })
				}
			})
		}
	})
}

func (f *Frontend) HighlightBookmark(path string) {
	f.queueDraw(func() {
		for i, b := range f.bookmarks {
			if b.Path == path {
				f.navList.SetCurrentItem(i)
				return
			}
		}
	})
}

func (f *Frontend) UpdateFont(font string, size int) {
	// Terminals pick the font; remember the preference anyway so a
	// graphical frontend would honour it.
	f.cfg.Font, f.cfg.FontSize = font, size
	f.log.Debug().Str("font", font).Int("size", size).Msg("font change requested")
}

func (f *Frontend) Run() error {
	f.body = tview.NewFlex().
		AddItem(f.navList, 28, 0, false).
		AddItem(f.details, 0, 1, true)
	f.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(f.urlBar, 1, 0, false).
		AddItem(f.body, 0, 1, true)
	f.pages.AddPage("main", f.layout, true, true)

	f.app.SetRoot(f.pages, true).
		EnableMouse(true).
		SetInputCapture(f.inputCapture).
		SetMouseCapture(f.mouseCapture)

	f.running.Store(true)
	defer f.running.Store(false)
	go f.dispatchLoop()

	return f.app.Run()
}

func (f *Frontend) Quit() {
	f.app.Stop()
}

// dispatchLoop runs application callbacks off the tview event loop,
// one at a time, so they may block on dialog results.
func (f *Frontend) dispatchLoop() {
	for action := range f.actions {
		action()
	}
}

func (f *Frontend) dispatch(action func()) {
	if !f.running.Load() {
		action()
		return
	}
	select {
	case f.actions <- action:
	case <-time.After(time.Second):
		f.log.Warn().Msg("dropping input event, action queue is saturated")
	}
}

// queueDraw applies a widget mutation on the event loop, or directly
// while the application is not running yet.
func (f *Frontend) queueDraw(update func()) {
	if !f.running.Load() {
		update()
		return
	}
	f.app.QueueUpdateDraw(update)
}

func (f *Frontend) setMark(row int, marked bool) {
	f.selMu.Lock()
	defer f.selMu.Unlock()
	if f.marks == nil {
		f.marks = make(map[int]bool)
	}
	f.marks[row] = marked
}

func (f *Frontend) rowName(row int) (string, bool) {
	cell := f.details.GetCell(row, 0)
	if cell == nil {
		return "", false
	}
	entry, ok := cell.GetReference().(files.Entry)
	if !ok || entry == nil {
		return "", false
	}
	return entry.Name(), true
}

// detailsInputCapture toggles the selection mark with space, in
// addition to the table's own navigation.
func (f *Frontend) detailsInputCapture(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == ' ' {
		row, _ := f.details.GetSelection()
		cell := f.details.GetCell(row, 0)
		if cell == nil {
			return nil
		}
		if strings.HasPrefix(cell.Text, markedPrefix) {
			cell.SetText(" " + strings.TrimPrefix(cell.Text, markedPrefix))
			f.setMark(row, false)
		} else if strings.HasPrefix(cell.Text, " ") {
			cell.SetText(markedPrefix + strings.TrimPrefix(cell.Text, " "))
			f.setMark(row, true)
		}
		return nil
	}
	return event
}

func (f *Frontend) mouseCapture(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	x, y := event.Position()
	f.mouseX.Store(int32(x))
	f.mouseY.Store(int32(y))
	if action == tview.MouseRightClick && f.modals.Load() == 0 && f.menuRequested != nil {
		f.dispatch(func() { f.menuRequested(frontend.FeEvent{MouseX: x, MouseY: y}) })
		return nil, action
	}
	return event, action
}

func (f *Frontend) feEvent() frontend.FeEvent {
	return frontend.FeEvent{
		MouseX: int(f.mouseX.Load()),
		MouseY: int(f.mouseY.Load()),
	}
}
