// Package config loads optional project settings from a .tldr.toml file.
// Everything in it can also be set on the command line; flags win.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFilename is looked up in the scan root when no config path is
// given.
const DefaultFilename = ".tldr.toml"

// Config mirrors the .tldr.toml layout.
type Config struct {
	// Output is the artifact filename relative to the scan root.
	Output string `toml:"output"`
	// Terse drops files with zero signatures from the artifact.
	Terse bool `toml:"terse"`
	// Exclude holds extra ignore patterns (gitignore syntax).
	Exclude []string `toml:"exclude"`
	// Include restricts the scan to paths matching these doublestar globs.
	Include []string `toml:"include"`
	// MaxFileSizeKB skips files larger than this. 0 means the built-in
	// default.
	MaxFileSizeKB int64 `toml:"max_file_size_kb"`

	// Languages maps a language tag to extra file extensions, e.g.
	//   [languages]
	//   cpp = [".h", ".tpp"]
	Languages map[string][]string `toml:"languages"`
}

// Load reads a config file. A missing file at the default location is not
// an error; a missing explicit path is.
func Load(path string, explicit bool) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("loading config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadForRoot loads the default config file from the scan root if present.
func LoadForRoot(root string) (*Config, error) {
	return Load(filepath.Join(root, DefaultFilename), false)
}

func (c *Config) validate() error {
	if c.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb must not be negative")
	}
	for lang, exts := range c.Languages {
		if len(exts) == 0 {
			return fmt.Errorf("language %q has no extensions", lang)
		}
		for _, ext := range exts {
			if ext == "" || ext[0] != '.' {
				return fmt.Errorf("language %q: extension %q must start with a dot", lang, ext)
			}
		}
	}
	return nil
}
