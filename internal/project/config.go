package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"numlit/internal/trace"
)

// ErrUnsupportedNatBits is returned for any [platform].nat_bits other than 64.
var ErrUnsupportedNatBits = errors.New("unsupported nat_bits")

const defaultNatBits = 64

type Config struct {
	Platform PlatformConfig `toml:"platform"`
	Batch    BatchConfig    `toml:"batch"`
	Cache    CacheConfig    `toml:"cache"`
	Trace    TraceConfig    `toml:"trace"`
}

type PlatformConfig struct {
	NatBits int `toml:"nat_bits"`
}

type BatchConfig struct {
	// Jobs <= 0 means one per CPU.
	Jobs           int `toml:"jobs"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Manifest is a loaded numlit.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// DefaultConfig is what an absent numlit.toml means.
func DefaultConfig() Config {
	return Config{
		Platform: PlatformConfig{NatBits: defaultNatBits},
		Batch:    BatchConfig{MaxDiagnostics: 200},
		Cache:    CacheConfig{Dir: ".numlit-cache"},
		Trace:    TraceConfig{Level: "off", Mode: "stream", Output: "-"},
	}
}

// Load finds and decodes numlit.toml starting at startDir. ok is false when
// no file exists; the caller then uses DefaultConfig.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes one file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("platform", "nat_bits") && cfg.Platform.NatBits != defaultNatBits {
		return Config{}, fmt.Errorf("%s: %w: %d (only 64 is supported)", path, ErrUnsupportedNatBits, cfg.Platform.NatBits)
	}
	if cfg.Batch.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [batch].jobs must not be negative", path)
	}
	if cfg.Batch.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [batch].max_diagnostics must not be negative", path)
	}
	if meta.IsDefined("cache", "dir") && strings.TrimSpace(cfg.Cache.Dir) == "" {
		return Config{}, fmt.Errorf("%s: [cache].dir is empty", path)
	}
	if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
		return Config{}, fmt.Errorf("%s: [trace].level: %w", path, err)
	}
	if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
		return Config{}, fmt.Errorf("%s: [trace].mode: %w", path, err)
	}
	return cfg, nil
}

// CacheDir resolves [cache].dir against the manifest root.
func (m *Manifest) CacheDir() string {
	if m == nil {
		return DefaultConfig().Cache.Dir
	}
	if filepath.IsAbs(m.Config.Cache.Dir) {
		return m.Config.Cache.Dir
	}
	return filepath.Join(m.Root, m.Config.Cache.Dir)
}
