package config

import (
	"github.com/pelletier/go-toml/v2"
)

type settingsDocument struct {
	IncludeHidden   bool     `toml:"include_hidden"`
	IncludeMounts   bool     `toml:"include_mounts"`
	IncludeSymlinks bool     `toml:"include_symlinks"`
	SortMode        string   `toml:"sort_mode"`
	Globs           []string `toml:"globs"`
}

// TOML renders the effective settings, for `yoink settings`.
func (s *Settings) TOML() ([]byte, error) {
	return toml.Marshal(settingsDocument{
		IncludeHidden:   s.IncludeHidden,
		IncludeMounts:   s.IncludeMounts,
		IncludeSymlinks: s.IncludeSymlinks,
		SortMode:        s.SortMode.String(),
		Globs:           s.Globs,
	})
}
