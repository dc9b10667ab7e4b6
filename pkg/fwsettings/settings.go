package fwsettings

import (
	"os"
	"path/filepath"
)

// UserDir is where fileway keeps per-user state.
const UserDir = "~/.fileway"

const configFileName = ".fileway.yaml"

var osUserHomeDir = os.UserHomeDir

// GetUserDir resolves UserDir against the user's home directory.
func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// DefaultConfigPath is the well-known per-user configuration file.
func DefaultConfigPath() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userHomeDir, configFileName), nil
}
