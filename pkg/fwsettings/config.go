package fwsettings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fileway/fileway/pkg/files"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Selection struct {
	TextColor       string `yaml:"text_color"`
	BackgroundColor string `yaml:"background_color"`
}

type Keybindings struct {
	FontSizeIncrease           string `yaml:"font_size_increase"`
	FontSizeDecrease           string `yaml:"font_size_decrease"`
	RenameItem                 string `yaml:"rename_item"`
	Search                     string `yaml:"search"`
	ExitSearch                 string `yaml:"exit_search"`
	GoUp                       string `yaml:"go_up"`
	OpenContextMenu            string `yaml:"open_context_menu"`
	Delete                     string `yaml:"delete"`
	CreateFolder               string `yaml:"create_folder"`
	CopySelection              string `yaml:"copy_selection"`
	Paste                      string `yaml:"paste"`
	ToggleHiddenFileVisibility string `yaml:"toggle_hidden_file_visibility"`
}

type Bookmark struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Config holds the user-customizable application settings. Zero
// values are replaced by defaults at load time.
type Config struct {
	Font            string `yaml:"font"`
	FontSize        int    `yaml:"font_size"`
	TextColor       string `yaml:"text_color"`
	BackgroundColor string `yaml:"background_color"`
	ShowHiddenFiles bool   `yaml:"show_hidden_files"`

	Window    Window      `yaml:"window"`
	Selection Selection   `yaml:"selection"`
	Keys      Keybindings `yaml:"keybindings"`

	// ContextMenu is the ordered list of enabled context-menu item
	// names.
	ContextMenu []string `yaml:"context_menu"`

	// FileSystems are additional mounts beyond the local root.
	FileSystems []files.MountConfig `yaml:"file_systems"`

	// Bookmarks are user-defined shortcuts added after the well-known
	// home folders.
	Bookmarks []Bookmark `yaml:"bookmarks"`
}

func DefaultConfig() Config {
	return Config{
		Font:            "monospace",
		FontSize:        14,
		TextColor:       "#eeeeee",
		BackgroundColor: "#000000",
		Window: Window{
			Title:  "{current_path} - fileway",
			Width:  1200,
			Height: 800,
		},
		Selection: Selection{
			TextColor:       "#000000",
			BackgroundColor: "#eeeeee",
		},
		Keys: Keybindings{
			FontSizeIncrease:           "Ctrl++",
			FontSizeDecrease:           "Ctrl+-",
			RenameItem:                 "F2",
			Search:                     "Ctrl+F",
			ExitSearch:                 "Esc",
			GoUp:                       "Backspace",
			OpenContextMenu:            "F9",
			Delete:                     "Delete",
			CreateFolder:               "F7",
			CopySelection:              "Ctrl+C",
			Paste:                      "Ctrl+V",
			ToggleHiddenFileVisibility: "Ctrl+H",
		},
		ContextMenu: []string{"CREATE_FOLDER", "CREATE_FILE", "RENAME", "PROPERTIES"},
	}
}

// LoadConfig reads the YAML configuration at path. A missing file
// yields the defaults; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields the user left empty.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Font == "" {
		c.Font = d.Font
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = d.BackgroundColor
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Selection.TextColor == "" {
		c.Selection.TextColor = d.Selection.TextColor
	}
	if c.Selection.BackgroundColor == "" {
		c.Selection.BackgroundColor = d.Selection.BackgroundColor
	}
	if c.ContextMenu == nil {
		c.ContextMenu = d.ContextMenu
	}
	fillKeybindings(&c.Keys, d.Keys)
}

func fillKeybindings(k *Keybindings, d Keybindings) {
	if k.FontSizeIncrease == "" {
		k.FontSizeIncrease = d.FontSizeIncrease
	}
	if k.FontSizeDecrease == "" {
		k.FontSizeDecrease = d.FontSizeDecrease
	}
	if k.RenameItem == "" {
		k.RenameItem = d.RenameItem
	}
	if k.Search == "" {
		k.Search = d.Search
	}
	if k.ExitSearch == "" {
		k.ExitSearch = d.ExitSearch
	}
	if k.GoUp == "" {
		k.GoUp = d.GoUp
	}
	if k.OpenContextMenu == "" {
		k.OpenContextMenu = d.OpenContextMenu
	}
	if k.Delete == "" {
		k.Delete = d.Delete
	}
	if k.CreateFolder == "" {
		k.CreateFolder = d.CreateFolder
	}
	if k.CopySelection == "" {
		k.CopySelection = d.CopySelection
	}
	if k.Paste == "" {
		k.Paste = d.Paste
	}
	if k.ToggleHiddenFileVisibility == "" {
		k.ToggleHiddenFileVisibility = d.ToggleHiddenFileVisibility
	}
}
