package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig marks a manifest that parsed but holds unusable values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Generator is the [generator] section.
type Generator struct {
	Seed             uint64 `toml:"seed"`
	Globals          int    `toml:"globals"`
	Locals           int    `toml:"locals"`
	Statements       int    `toml:"statements"`
	Checksum         bool   `toml:"checksum"`
	Prefix           string `toml:"prefix"`
	DeferInitPercent int    `toml:"defer_init_percent"`
}

// Batch is the [batch] section.
type Batch struct {
	Count int    `toml:"count"`
	Out   string `toml:"out"`
	// Jobs bounds the worker pool; 0 means GOMAXPROCS.
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Config is the whole manifest.
type Config struct {
	Generator Generator `toml:"generator"`
	Batch     Batch     `toml:"batch"`
}

// Defaults returns the configuration used when no manifest exists.
func Defaults() Config {
	return Config{
		Generator: Generator{
			Seed:             1,
			Globals:          4,
			Locals:           3,
			Statements:       8,
			Checksum:         true,
			DeferInitPercent: 25,
		},
		Batch: Batch{
			Count: 16,
			Out:   "out",
			Cache: true,
		},
	}
}

// Validate reports the first out-of-range value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	g, b := c.Generator, c.Batch
	switch {
	case g.Globals < 0:
		return fmt.Errorf("%w: [generator].globals must be >= 0, got %d", ErrInvalidConfig, g.Globals)
	case g.Locals < 0:
		return fmt.Errorf("%w: [generator].locals must be >= 0, got %d", ErrInvalidConfig, g.Locals)
	case g.Statements < 0:
		return fmt.Errorf("%w: [generator].statements must be >= 0, got %d", ErrInvalidConfig, g.Statements)
	case g.DeferInitPercent < 0 || g.DeferInitPercent > 100:
		return fmt.Errorf("%w: [generator].defer_init_percent must be in [0, 100], got %d", ErrInvalidConfig, g.DeferInitPercent)
	case b.Count < 1:
		return fmt.Errorf("%w: [batch].count must be >= 1, got %d", ErrInvalidConfig, b.Count)
	case b.Jobs < 0:
		return fmt.Errorf("%w: [batch].jobs must be >= 0, got %d", ErrInvalidConfig, b.Jobs)
	case strings.TrimSpace(b.Out) == "":
		return fmt.Errorf("%w: [batch].out must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Manifest is a loaded vecsmith.toml. Path and Root are empty when the
// defaults are used.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// OutDir resolves [batch].out against the manifest directory.
func (m *Manifest) OutDir() string {
	out := filepath.FromSlash(m.Config.Batch.Out)
	if filepath.IsAbs(out) || m.Root == "" {
		return out
	}
	return filepath.Join(m.Root, out)
}

// Load finds vecsmith.toml above startDir and decodes it over the defaults.
// found is false when no manifest exists; the defaults are returned then.
func Load(startDir string) (m *Manifest, found bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Defaults()}, false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes one manifest file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# vecsmith generator configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault creates dir/vecsmith.toml with the defaults. It refuses to
// overwrite an existing manifest.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	data, err := Encode(Defaults())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
