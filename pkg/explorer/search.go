package explorer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/fileway/fileway/pkg/files"
)

var foldCaser = cases.Fold()

// matchesTerm reports whether name contains term, compared under
// Unicode case folding.
func matchesTerm(name, term string) bool {
	return strings.Contains(foldCaser.String(name), foldCaser.String(term))
}

// Search switches to the SEARCH display mode with the given term. An
// empty term is ignored.
func (e *Explorer) Search(term string) {
	if term == "" {
		return
	}
	e.searchTerm = term
	e.mode = ModeSearch
	e.log.Debug().Str("term", term).Str("path", e.currentPath).Msg("entering search mode")
	e.modeChanged.Produce()
}

// PromptSearch asks for a term via the frontend and runs the search.
func (e *Explorer) PromptSearch() {
	term, ok := e.fe.MakeTextInputMessage("Search", "Enter search term:")
	if !ok {
		return
	}
	e.Search(term)
}

// ExitSearch restores the ordinary single-level listing.
func (e *Explorer) ExitSearch() {
	if e.mode != ModeSearch {
		return
	}
	e.mode = ModeList
	e.searchTerm = ""
	e.modeChanged.Produce()
}

// HandleEscape closes an open context menu, or exits search mode.
func (e *Explorer) HandleEscape() {
	if e.openMenu != nil {
		e.openMenu.Close()
		e.openMenu = nil
		return
	}
	e.ExitSearch()
}

// searchEntries lists the tree under the current path and keeps the
// entries whose name matches the search term case-insensitively.
func (e *Explorer) searchEntries(fs files.FileSystem) ([]files.Entry, error) {
	entries, err := fs.ListContents(e.ctx, e.currentPath, true)
	if err != nil {
		return nil, err
	}
	matched := entries[:0]
	for _, entry := range entries {
		if matchesTerm(entry.Name(), e.searchTerm) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}
