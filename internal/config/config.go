package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "monthcal.db"
	EnvConfigPath         = "MONTHCAL_CONFIG"
	appDirName            = "monthcal"
)

type Keymap struct {
	Prev    string `toml:"prev"`
	Next    string `toml:"next"`
	Today   string `toml:"today"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Left    string `toml:"left"`
	Right   string `toml:"right"`
	Add     string `toml:"add"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
	Help    string `toml:"help"`
	Quit    string `toml:"quit"`
}

// Theme holds lipgloss colors (ANSI numbers or hex) per cell tag.
type Theme struct {
	Header    string `toml:"header"`
	Today     string `toml:"today"`
	Highlight string `toml:"highlight"`
	Overflow  string `toml:"overflow"`
	Marked    string `toml:"marked"`
	Border    string `toml:"border"`
}

type Config struct {
	DBPath  string `toml:"db_path"`
	Mouse   bool   `toml:"mouse"`
	LogFile string `toml:"log_file"`
	Keys    Keymap `toml:"keys"`
	Theme   Theme  `toml:"theme"`
}

// ResolveConfigPath picks the config file location: $MONTHCAL_CONFIG, then
// the user config dir, then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults(filepath.Dir(path))
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fillDefaults restores fields a hand-edited file left empty. A relative
// db_path is taken relative to the config file.
func (c *Config) fillDefaults(dir string) {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = DefaultDBName
	}
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	setIfEmpty(&c.Keys.Prev, def.Keys.Prev)
	setIfEmpty(&c.Keys.Next, def.Keys.Next)
	setIfEmpty(&c.Keys.Today, def.Keys.Today)
	setIfEmpty(&c.Keys.Up, def.Keys.Up)
	setIfEmpty(&c.Keys.Down, def.Keys.Down)
	setIfEmpty(&c.Keys.Left, def.Keys.Left)
	setIfEmpty(&c.Keys.Right, def.Keys.Right)
	setIfEmpty(&c.Keys.Add, def.Keys.Add)
	setIfEmpty(&c.Keys.Confirm, def.Keys.Confirm)
	setIfEmpty(&c.Keys.Cancel, def.Keys.Cancel)
	setIfEmpty(&c.Keys.Help, def.Keys.Help)
	setIfEmpty(&c.Keys.Quit, def.Keys.Quit)
	setIfEmpty(&c.Theme.Header, def.Theme.Header)
	setIfEmpty(&c.Theme.Today, def.Theme.Today)
	setIfEmpty(&c.Theme.Highlight, def.Theme.Highlight)
	setIfEmpty(&c.Theme.Overflow, def.Theme.Overflow)
	setIfEmpty(&c.Theme.Marked, def.Theme.Marked)
	setIfEmpty(&c.Theme.Border, def.Theme.Border)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func Default() Config {
	return Config{
		DBPath: DefaultDBName,
		Mouse:  true,
		Keys: Keymap{
			Prev:    "p",
			Next:    "n",
			Today:   "t",
			Up:      "k",
			Down:    "j",
			Left:    "h",
			Right:   "l",
			Add:     "a",
			Confirm: "enter",
			Cancel:  "esc",
			Help:    "?",
			Quit:    "q",
		},
		Theme: Theme{
			Header:    "252",
			Today:     "212",
			Highlight: "63",
			Overflow:  "241",
			Marked:    "114",
			Border:    "240",
		},
	}
}
