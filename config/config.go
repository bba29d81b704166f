// Package config provides configuration management for Centr.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesbarr/centr/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Supported values for Config.Anchor.
const (
	AnchorCenter = "center"
	AnchorSmart  = "smart"
	AnchorFace   = "face"
)

// Supported values for Config.Format.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

var resampleFilters = []string{"lanczos", "catmullrom", "linear", "box", "nearest"}

// Config holds all configuration read from the YAML file.
type Config struct {
	Anchor      string `yaml:"anchor"`
	Resample    string `yaml:"resample"`
	JPEGQuality int    `yaml:"jpeg_quality"`
	Format      string `yaml:"format"`

	// Display overrides the detected desktop size, e.g. "1080x2400".
	Display string `yaml:"display,omitempty"`

	OutputDir string `yaml:"output_dir"`
	// KeepWallpapers is how many rendered wallpapers to keep in OutputDir.
	// Zero keeps everything.
	KeepWallpapers int `yaml:"keep_wallpapers"`

	// FaceModel is the path to a pigo cascade file used by the face anchor.
	FaceModel string `yaml:"face_model,omitempty"`

	UserAgent         string  `yaml:"user_agent"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	MaxDownloadBytes  int64   `yaml:"max_download_bytes"`

	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Anchor:            AnchorCenter,
		Resample:          "lanczos",
		JPEGQuality:       95,
		Format:            FormatJPEG,
		OutputDir:         filepath.Join(os.TempDir(), strings.ToLower(AppName)),
		KeepWallpapers:    5,
		UserAgent:         AppName + "/" + AppVersion,
		RequestsPerSecond: 2,
		MaxDownloadBytes:  64 << 20,
	}
}

// DefaultPath returns the path to the user's config file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, LogSubDir, ConfigFileName), nil
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	switch c.Anchor {
	case AnchorCenter, AnchorSmart, AnchorFace:
	default:
		return fmt.Errorf("unknown anchor %q", c.Anchor)
	}
	switch c.Format {
	case FormatJPEG, FormatPNG:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if !validResample(c.Resample) {
		return fmt.Errorf("unknown resample filter %q", c.Resample)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be 1-100, got %d", c.JPEGQuality)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0")
	}
	if c.KeepWallpapers < 0 {
		return fmt.Errorf("keep_wallpapers must be >= 0")
	}
	if c.MaxDownloadBytes <= 0 {
		return fmt.Errorf("max_download_bytes must be > 0")
	}
	if _, _, err := c.DisplaySize(); err != nil {
		return err
	}
	return nil
}

// DisplaySize returns the display override, if one is configured.
func (c *Config) DisplaySize() (geometry.Rect, bool, error) {
	if strings.TrimSpace(c.Display) == "" {
		return geometry.Rect{}, false, nil
	}
	r, err := geometry.ParseSize(c.Display)
	if err != nil {
		return geometry.Rect{}, false, fmt.Errorf("display: %w", err)
	}
	return r, true, nil
}

func validResample(name string) bool {
	for _, f := range resampleFilters {
		if f == name {
			return true
		}
	}
	return false
}
