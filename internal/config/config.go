// Package config loads rpncalc.toml settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"github.com/zephyrtronium/rpncalc"
)

// FileName is the name of the configuration file looked up from the working
// directory toward the root.
const FileName = "rpncalc.toml"

// Config is the effective configuration of the command.
type Config struct {
	// Path is the file the configuration was read from, or empty for the
	// defaults.
	Path string
	// Format is the fmt verb used to print results.
	Format string
	// Color is auto, on, or off.
	Color string
	// StrictParens and Lenient select the evaluation options of the same
	// names.
	StrictParens bool
	Lenient      bool
	// Jobs is the batch concurrency. Zero means GOMAXPROCS.
	Jobs int
}

type fileConfig struct {
	Output outputConfig `toml:"output"`
	Eval   evalConfig   `toml:"eval"`
	Batch  batchConfig  `toml:"batch"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type evalConfig struct {
	StrictParens bool `toml:"strict_parens"`
	Lenient      bool `toml:"lenient"`
}

type batchConfig struct {
	Jobs int64 `toml:"jobs"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{Format: "%g", Color: "auto"}
}

// Options returns the evaluation options selected by c.
func (c Config) Options() []rpncalc.Option {
	var opts []rpncalc.Option
	if c.StrictParens {
		opts = append(opts, rpncalc.StrictParens())
	}
	if c.Lenient {
		opts = append(opts, rpncalc.Lenient())
	}
	return opts
}

// Find looks for FileName in startDir and its parents. The boolean result
// reports whether a file was found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or the defaults if
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads a configuration file. Keys that are absent keep their default
// values. Unknown keys and invalid values are errors naming the file.
func Load(path string) (Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if und := meta.Undecoded(); len(und) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, und[0].String())
	}
	cfg := Default()
	cfg.Path = path
	if meta.IsDefined("output", "format") {
		f := fc.Output.Format
		if !strings.Contains(f, "%") {
			return Config{}, fmt.Errorf("%s: [output].format %q has no verb", path, f)
		}
		cfg.Format = f
	}
	if meta.IsDefined("output", "color") {
		c, err := ParseColor(fc.Output.Color)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [output].color: %w", path, err)
		}
		cfg.Color = c
	}
	cfg.StrictParens = fc.Eval.StrictParens
	cfg.Lenient = fc.Eval.Lenient
	if fc.Batch.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [batch].jobs must not be negative, got %d", path, fc.Batch.Jobs)
	}
	jobs, err := safecast.Conv[int](fc.Batch.Jobs)
	if err != nil {
		return Config{}, fmt.Errorf("%s: [batch].jobs: %w", path, err)
	}
	cfg.Jobs = jobs
	return cfg, nil
}

// ParseColor normalizes a color mode.
func ParseColor(s string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "auto", "on", "off":
		return m, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (must be auto, on, or off)", s)
	}
}
