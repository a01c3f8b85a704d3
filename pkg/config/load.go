package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lturtle/pkg/errors"
)

// Load reads the TOML file at path on top of the defaults. When the file
// names a preset, the preset replaces the defaults before the file's own
// values are applied. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [Path] if it exists and returns [Default]
// otherwise.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Decode parses TOML text on top of the defaults (or the named preset).
func Decode(text string) (Config, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(text, &head); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if head.Preset != "" {
		p, err := Preset(head.Preset)
		if err != nil {
			return Config{}, err
		}
		cfg = p
	}

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
