package tviewfe

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// showDialog puts a primitive up as a centered page and focuses it.
// Must be called on the event loop.
func (f *Frontend) showDialog(name string, p tview.Primitive, width, height int) {
	grid := tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
	f.modals.Add(1)
	f.pages.AddPage(name, grid, true, true)
	f.app.SetFocus(p)
}

func (f *Frontend) closeDialog(name string) {
	f.pages.RemovePage(name)
	f.modals.Add(-1)
	f.app.SetFocus(f.details)
}

// MakeTextInputMessage shows a one-line input dialog and blocks the
// dispatch goroutine until it is submitted or cancelled. Called
// before the event loop runs, it reports no input.
func (f *Frontend) MakeTextInputMessage(title, message string) (string, bool) {
	if !f.running.Load() {
		return "", false
	}
	type result struct {
		value string
		ok    bool
	}
	done := make(chan result, 1)
	const page = "dialog-input"

	f.app.QueueUpdateDraw(func() {
		input := tview.NewInputField().SetLabel(message + " ").SetFieldWidth(0)
		finish := func(r result) {
			f.closeDialog(page)
			done <- r
		}
		input.SetDoneFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyEnter:
				finish(result{value: input.GetText(), ok: true})
			case tcell.KeyEscape:
				finish(result{})
			}
		})
		input.SetBorder(true).SetTitle(" " + title + " ")
		f.showDialog(page, input, 60, 3)
	})

	r := <-done
	return r.value, r.ok
}

// MakeOkCancelMessage shows a confirmation dialog and blocks until
// answered. Without a running event loop the answer is no.
func (f *Frontend) MakeOkCancelMessage(title, message string) bool {
	if !f.running.Load() {
		return false
	}
	done := make(chan bool, 1)
	const page = "dialog-confirm"

	f.app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"OK", "Cancel"}).
			SetDoneFunc(func(index int, label string) {
				f.closeDialog(page)
				done <- label == "OK"
			})
		modal.SetTitle(" " + title + " ")
		f.modals.Add(1)
		f.pages.AddPage(page, modal, true, true)
		f.app.SetFocus(modal)
	})

	return <-done
}

func (f *Frontend) MakeErrorMessage(title, message string) {
	f.showMessage(title, message, tcell.ColorDarkRed)
}

func (f *Frontend) MakeInfoMessage(title, message string) {
	f.showMessage(title, message, tview.Styles.ContrastBackgroundColor)
}

// showMessage blocks until the dialog is dismissed, keeping dialog
// sequences ordered. Before the event loop runs it only logs.
func (f *Frontend) showMessage(title, message string, background tcell.Color) {
	if !f.running.Load() {
		f.log.Warn().Str("title", title).Str("message", message).Msg("message before UI start")
		return
	}
	done := make(chan struct{})
	const page = "dialog-message"

	f.app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			SetBackgroundColor(background).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(int, string) {
				f.closeDialog(page)
				close(done)
			})
		modal.SetTitle(" " + title + " ")
		f.modals.Add(1)
		f.pages.AddPage(page, modal, true, true)
		f.app.SetFocus(modal)
	})

	<-done
}
