package tviewfe

import (
	"github.com/rivo/tview"

	"github.com/fileway/fileway/pkg/frontend"
)

const menuPage = "context-menu"

// contextMenu is a floating list of actions anchored at the pointer.
type contextMenu struct {
	f    *Frontend
	list *tview.List
	w, h int
}

var _ frontend.ContextMenu = (*contextMenu)(nil)

func (f *Frontend) MakeContextMenu(items []frontend.ContextMenuItem, selection []string) frontend.ContextMenu {
	m := &contextMenu{f: f}
	m.list = tview.NewList().ShowSecondaryText(false)
	m.list.SetBorder(true)

	width := 0
	for _, item := range items {
		item := item
		m.list.AddItem(item.Label, "", 0, func() {
			// The selected callback already runs on the event loop;
			// going through queueDraw here would block the loop on
			// itself.
			m.closeNow()
			if item.Action != nil {
				f.dispatch(func() { item.Action(selection) })
			}
		})
		if len(item.Label) > width {
			width = len(item.Label)
		}
	}
	m.w = width + 4
	m.h = len(items) + 2
	return m
}

// Post shows the menu near the given screen position, pulled back
// inside the screen when it would overflow.
func (m *contextMenu) Post(x, y int) {
	m.f.queueDraw(func() {
		if _, _, screenW, screenH := m.f.pages.GetRect(); screenW > 0 {
			if x+m.w > screenW {
				x = screenW - m.w
			}
			if y+m.h > screenH {
				y = screenH - m.h
			}
		}
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		m.list.SetRect(x, y, m.w, m.h)
		m.f.pages.AddPage(menuPage, m.list, false, true)
		m.f.app.SetFocus(m.list)
	})
}

// Close hides the menu from off the event loop (explorer escape
// handling runs on the dispatch goroutine).
func (m *contextMenu) Close() {
	m.f.queueDraw(m.closeNow)
}

// closeNow removes the menu page directly; event-loop callers only.
func (m *contextMenu) closeNow() {
	m.f.pages.RemovePage(menuPage)
	if m.f.details != nil {
		m.f.app.SetFocus(m.f.details)
	}
}
