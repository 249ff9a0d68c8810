package vconsole

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BootConfig is the on-disk boot configuration for a vconsoled daemon:
// the geometry and count of virtual consoles to create, plus the
// backend kind, standing in for spec.md §6's "environment / boot
// contract" (video.columns, video.lines, capability flags).
type BootConfig struct {
	Columns int    `yaml:"columns"`
	Lines   int    `yaml:"lines"`
	Count   int    `yaml:"count"`
	Backend string `yaml:"backend"` // "text" or "framebuffer"
	Shell   string `yaml:"shell"`
	Debug   bool   `yaml:"debug"`
}

// DefaultBootConfig returns the configuration used when no file is
// supplied: an 80x25 text console, one VC, /bin/sh.
func DefaultBootConfig() BootConfig {
	return BootConfig{
		Columns: 80,
		Lines:   25,
		Count:   1,
		Backend: "text",
		Shell:   "/bin/sh",
	}
}

// LoadBootConfig reads and parses a YAML boot configuration file,
// filling unset fields from [DefaultBootConfig].
func LoadBootConfig(path string) (BootConfig, error) {
	cfg := DefaultBootConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("vconsole: read boot config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("vconsole: parse boot config: %w", err)
	}
	if cfg.Columns <= 0 || cfg.Lines <= 0 || cfg.Count <= 0 {
		return cfg, fmt.Errorf("vconsole: boot config: columns, lines and count must be positive")
	}
	return cfg, nil
}

// NewBackend constructs the [VideoBackend] named by cfg.Backend.
func (cfg BootConfig) NewBackend() (VideoBackend, error) {
	switch cfg.Backend {
	case "", "text":
		return NewTextBackend(cfg.Columns, cfg.Lines), nil
	case "framebuffer":
		return NewFramebufferBackend(cfg.Columns, cfg.Lines), nil
	default:
		return nil, fmt.Errorf("vconsole: unknown backend %q", cfg.Backend)
	}
}
