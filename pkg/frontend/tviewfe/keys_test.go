package tviewfe

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/fileway/fileway/pkg/frontend"
)

func TestParseShortcut(t *testing.T) {
	for name, tt := range map[string]struct {
		keys string
		want shortcut
	}{
		"ctrl_letter":   {"Ctrl+F", shortcut{key: tcell.KeyRune, r: 'f', mod: tcell.ModCtrl}},
		"ctrl_plus":     {"Ctrl++", shortcut{key: tcell.KeyRune, r: '+', mod: tcell.ModCtrl}},
		"ctrl_minus":    {"Ctrl+-", shortcut{key: tcell.KeyRune, r: '-', mod: tcell.ModCtrl}},
		"function_key":  {"F2", shortcut{key: tcell.KeyF2}},
		"function_high": {"F12", shortcut{key: tcell.KeyF12}},
		"escape":        {"Esc", shortcut{key: tcell.KeyEscape}},
		"backspace":     {"Backspace", shortcut{key: tcell.KeyBackspace}},
		"delete":        {"Delete", shortcut{key: tcell.KeyDelete}},
		"bare_rune":     {"x", shortcut{key: tcell.KeyRune, r: 'x'}},
		"upper_rune":    {"X", shortcut{key: tcell.KeyRune, r: 'x'}},
		"alt_combo":     {"Alt+Enter", shortcut{key: tcell.KeyEnter, mod: tcell.ModAlt}},
		"space":         {"Space", shortcut{key: tcell.KeyRune, r: ' '}},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := parseShortcut(tt.keys)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShortcut_invalid(t *testing.T) {
	for _, keys := range []string{"", "Ctrl+", "Hyper+X", "Ctrl+Foo"} {
		_, err := parseShortcut(keys)
		assert.Error(t, err, keys)
	}
}

func TestShortcutFromEvent(t *testing.T) {
	t.Run("ctrl_letter_is_folded_back", func(t *testing.T) {
		ev := tcell.NewEventKey(tcell.KeyCtrlF, rune(tcell.KeyCtrlF), tcell.ModCtrl)
		assert.Equal(t, shortcut{key: tcell.KeyRune, r: 'f', mod: tcell.ModCtrl}, shortcutFromEvent(ev))
	})

	t.Run("backspace2_maps_to_backspace", func(t *testing.T) {
		ev := tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)
		assert.Equal(t, shortcut{key: tcell.KeyBackspace}, shortcutFromEvent(ev))
	})

	t.Run("ctrl_h_differs_from_backspace", func(t *testing.T) {
		ev := tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModCtrl)
		assert.Equal(t, shortcut{key: tcell.KeyRune, r: 'h', mod: tcell.ModCtrl}, shortcutFromEvent(ev))
	})

	t.Run("plain_rune", func(t *testing.T) {
		ev := tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)
		assert.Equal(t, shortcut{key: tcell.KeyRune, r: 'q'}, shortcutFromEvent(ev))
	})

	t.Run("function_key", func(t *testing.T) {
		ev := tcell.NewEventKey(tcell.KeyF9, 0, tcell.ModNone)
		assert.Equal(t, shortcut{key: tcell.KeyF9}, shortcutFromEvent(ev))
	})
}

func TestBindKeyboardShortcut_roundTrip(t *testing.T) {
	f := newTestFrontend(t)

	fired := 0
	f.BindKeyboardShortcut("Ctrl+F", func(frontend.FeEvent) { fired++ })
	f.BindKeyboardShortcut("no-such-key", func(frontend.FeEvent) { fired++ }) // dropped with a warning

	assert.Len(t, f.shortcuts, 1)
	ev := tcell.NewEventKey(tcell.KeyCtrlF, rune(tcell.KeyCtrlF), tcell.ModCtrl)
	assert.Nil(t, f.inputCapture(ev), "matched events are consumed")
	assert.Equal(t, 1, fired)

	unbound := tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	assert.Equal(t, unbound, f.inputCapture(unbound), "unbound events pass through")
}

func TestInputCapture_suppressedWhileDialogOpen(t *testing.T) {
	f := newTestFrontend(t)

	fired := 0
	f.BindKeyboardShortcut("F2", func(frontend.FeEvent) { fired++ })

	f.modals.Add(1)
	ev := tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)
	assert.Equal(t, ev, f.inputCapture(ev))
	assert.Equal(t, 0, fired)

	f.modals.Add(-1)
	assert.Nil(t, f.inputCapture(ev))
	assert.Equal(t, 1, fired)
}
