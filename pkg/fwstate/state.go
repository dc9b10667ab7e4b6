package fwstate

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/fileway/fileway/pkg/fsutils"
	"github.com/fileway/fileway/pkg/fwsettings"
)

const stateFileName = "fileway-state.json"

var logger = log.With().Str("component", "fwstate").Logger()

var readJSON = fsutils.ReadJSONFile
var writeJSON = fsutils.WriteJSONFile
var getUserDir = fwsettings.GetUserDir

// State is the session snapshot restored at startup when no explicit
// path is given on the command line.
type State struct {
	Mount        string `json:"mount,omitempty"`
	CurrentPath  string `json:"current_path,omitempty"`
	SelectedItem string `json:"selected_item,omitempty"`
}

func getStateFilePath() (string, error) {
	dir, err := getUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stateFileName), nil
}

// Load returns the persisted state; an absent or unreadable file
// yields the zero state.
func Load() State {
	var state State
	filePath, err := getStateFilePath()
	if err != nil {
		return state
	}
	if err = readJSON(filePath, false, &state); err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("failed to read state file")
	}
	return state
}

// SaveCurrentLocation persists the mount and path the user is
// browsing. Failures are logged, never fatal.
func SaveCurrentLocation(mount, currentPath string) {
	save(func(state *State) {
		state.Mount = mount
		state.CurrentPath = currentPath
	})
}

// SaveSelectedItem persists the entry name selected in the details
// pane.
func SaveSelectedItem(name string) {
	save(func(state *State) {
		state.SelectedItem = name
	})
}

func save(update func(state *State)) {
	filePath, err := getStateFilePath()
	if err != nil {
		logger.Warn().Err(err).Msg("user dir unknown, state not saved")
		return
	}
	state := Load()
	update(&state)
	if err := writeJSON(filePath, state); err != nil {
		logger.Warn().Err(err).Str("file", filePath).Msg("failed to write state file")
	}
}
