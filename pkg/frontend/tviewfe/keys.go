package tviewfe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/fileway/fileway/pkg/frontend"
)

// shortcut is a normalized key combination used as a lookup key for
// bound callbacks.
type shortcut struct {
	key tcell.Key
	r   rune
	mod tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
}

// parseShortcut turns a textual binding like "Ctrl+F", "F2" or
// "Ctrl++" into its normalized form.
func parseShortcut(keys string) (shortcut, error) {
	if keys == "" {
		return shortcut{}, fmt.Errorf("empty shortcut")
	}
	parts := strings.Split(keys, "+")
	key := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if key == "" && len(mods) > 0 && mods[len(mods)-1] == "" {
		// A trailing "++" binds the plus key itself.
		key = "+"
		mods = mods[:len(mods)-1]
	}
	if key == "" {
		return shortcut{}, fmt.Errorf("shortcut %q has no key", keys)
	}

	var sc shortcut
	for _, mod := range mods {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			sc.mod |= tcell.ModCtrl
		case "alt":
			sc.mod |= tcell.ModAlt
		case "shift":
			sc.mod |= tcell.ModShift
		case "meta":
			sc.mod |= tcell.ModMeta
		default:
			return shortcut{}, fmt.Errorf("shortcut %q has unknown modifier %q", keys, mod)
		}
	}

	lower := strings.ToLower(key)
	if named, ok := namedKeys[lower]; ok {
		sc.key = named
		return sc, nil
	}
	if lower == "space" {
		sc.key, sc.r = tcell.KeyRune, ' '
		return sc, nil
	}
	if strings.HasPrefix(lower, "f") && len(lower) > 1 {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 12 {
			sc.key = tcell.KeyF1 + tcell.Key(n-1)
			return sc, nil
		}
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		sc.key, sc.r = tcell.KeyRune, unicode.ToLower(r)
		return sc, nil
	}
	return shortcut{}, fmt.Errorf("unknown key %q in shortcut %q", key, keys)
}

// shortcutFromEvent normalizes a tcell key event the same way
// parseShortcut normalizes bindings. Control-letter codes are folded
// back to Ctrl+rune so that "Ctrl+F" matches the raw 0x06 byte.
func shortcutFromEvent(event *tcell.EventKey) shortcut {
	key, r, mod := event.Key(), event.Rune(), event.Modifiers()
	mod &= tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta

	switch {
	case key == tcell.KeyBackspace2:
		return shortcut{key: tcell.KeyBackspace}
	case mod&tcell.ModCtrl != 0 && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return shortcut{key: tcell.KeyRune, r: 'a' + rune(key-tcell.KeyCtrlA), mod: mod}
	case key == tcell.KeyRune:
		return shortcut{key: tcell.KeyRune, r: unicode.ToLower(r), mod: mod}
	default:
		return shortcut{key: key, mod: mod}
	}
}

func (f *Frontend) BindKeyboardShortcut(keys string, callback func(frontend.FeEvent)) {
	sc, err := parseShortcut(keys)
	if err != nil {
		f.log.Warn().Err(err).Str("keys", keys).Msg("ignoring unparsable keybinding")
		return
	}
	f.shortcuts[sc] = callback
}

// inputCapture routes global shortcuts. Events are passed through
// while a dialog is open, so typing in an input field never triggers
// application actions.
func (f *Frontend) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if f.modals.Load() > 0 {
		return event
	}
	if callback, ok := f.shortcuts[shortcutFromEvent(event)]; ok {
		ev := f.feEvent()
		f.dispatch(func() { callback(ev) })
		return nil
	}
	return event
}
