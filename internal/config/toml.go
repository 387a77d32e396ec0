// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keydrill/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Lessons  []LessonTable  `toml:"lesson"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	SourceLayout      *string `toml:"source-layout"`
	TargetLayout      *string `toml:"target-layout"`
	Words             *int    `toml:"words"`
	WordList          *string `toml:"wordlist"`
	Seed              *int64  `toml:"seed"`
	SkipUnsatisfiable *bool   `toml:"skip-unsatisfiable"`
}

// LessonTable is one [[lesson]] entry.
type LessonTable struct {
	Name     string `toml:"name"`
	Alphabet string `toml:"alphabet"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// LessonConfigs returns the [[lesson]] tables, or nil when there are none.
func (f FileConfig) LessonConfigs() []model.LessonConfig {
	if len(f.Lessons) == 0 {
		return nil
	}
	lessons := make([]model.LessonConfig, 0, len(f.Lessons))
	for _, l := range f.Lessons {
		lessons = append(lessons, model.LessonConfig{Name: l.Name, Alphabet: l.Alphabet})
	}
	return lessons
}

// Template is written by `keydrill config` when no file exists yet.
const Template = `# keydrill configuration

[practice]
# source-layout = "qwerty"
# target-layout = "dvorak"
# words = 100
# wordlist = "/path/to/words.txt"
# seed = 0
# skip-unsatisfiable = false

# Lessons replace the built-in table when present. Each alphabet must be at
# least as large as the previous one.
#
# [[lesson]]
# name = "home row"
# alphabet = "aoeuhtns"
`
