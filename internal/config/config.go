// Package config loads the JSON configuration used by the texatlas command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/texatlas"
)

// DefaultWorkers is the script concurrency when none is configured.
const DefaultWorkers = 4

// Config holds export defaults for the CLI. Every field is optional; the
// Get* methods fall back to the library defaults for omitted keys, so
// partial configs are safe.
type Config struct {
	// Grid overrides the document grid, as "WxH" (e.g. "16x16").
	Grid *string `json:"grid,omitempty"`

	// Texture encoding
	PixelFormat      *string `json:"pixel_format,omitempty"`
	TextureType      *string `json:"texture_type,omitempty"`
	MipmapFilter     *string `json:"mipmap_filter,omitempty"`
	GenerateMipmaps  *bool   `json:"generate_mipmaps,omitempty"`
	PreMultiplyAlpha *bool   `json:"premultiply_alpha,omitempty"`

	// Atlas controls whether export writes the manifest alongside the texture.
	Atlas *bool `json:"atlas,omitempty"`

	Debug   *bool `json:"debug,omitempty"`
	Workers *int  `json:"workers,omitempty"`
}

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and be at most 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every set field parses.
func (c *Config) Validate() error {
	if c.Grid != nil {
		if _, err := ParseGrid(*c.Grid); err != nil {
			return err
		}
	}
	if c.PixelFormat != nil {
		if _, err := texatlas.ParsePixelFormat(*c.PixelFormat); err != nil {
			return fmt.Errorf("invalid pixel_format: %w", err)
		}
	}
	if c.TextureType != nil {
		if _, err := texatlas.ParseTextureType(*c.TextureType); err != nil {
			return fmt.Errorf("invalid texture_type: %w", err)
		}
	}
	if c.MipmapFilter != nil {
		if _, err := texatlas.ParseMipmapFilter(*c.MipmapFilter); err != nil {
			return fmt.Errorf("invalid mipmap_filter: %w", err)
		}
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	return nil
}

// ParseGrid parses a "WxH" grid size. Both components must be at least 1.
func ParseGrid(s string) (*texatlas.Extent, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return nil, fmt.Errorf("invalid grid %q, want WxH", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid grid width %q: %w", ws, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid grid height %q: %w", hs, err)
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("grid %q must be at least 1x1", s)
	}
	return &texatlas.Extent{W: w, H: h}, nil
}

// GetGrid returns the grid override, or nil to use the document grid.
func (c *Config) GetGrid() *texatlas.Extent {
	if c.Grid == nil {
		return nil
	}
	g, err := ParseGrid(*c.Grid)
	if err != nil {
		return nil
	}
	return g
}

// EncodeOptions returns the configured texture options on top of
// texatlas.DefaultEncodeOptions.
func (c *Config) EncodeOptions() texatlas.EncodeOptions {
	opts := texatlas.DefaultEncodeOptions()
	if c.PixelFormat != nil {
		if f, err := texatlas.ParsePixelFormat(*c.PixelFormat); err == nil {
			opts.PixelFormat = f
		}
	}
	if c.TextureType != nil {
		if t, err := texatlas.ParseTextureType(*c.TextureType); err == nil {
			opts.TextureType = t
		}
	}
	if c.MipmapFilter != nil {
		if f, err := texatlas.ParseMipmapFilter(*c.MipmapFilter); err == nil {
			opts.MipmapFilter = f
		}
	}
	if c.GenerateMipmaps != nil {
		opts.GenerateMipmaps = *c.GenerateMipmaps
	}
	if c.PreMultiplyAlpha != nil {
		opts.PreMultiplyAlpha = *c.PreMultiplyAlpha
	}
	return opts
}

// GetAtlas returns the atlas value or the default (true).
func (c *Config) GetAtlas() bool {
	if c.Atlas == nil {
		return true
	}
	return *c.Atlas
}

// GetDebug returns the debug value or the default (false).
func (c *Config) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}

// GetWorkers returns the workers value or DefaultWorkers.
func (c *Config) GetWorkers() int {
	if c.Workers == nil || *c.Workers < 1 {
		return DefaultWorkers
	}
	return *c.Workers
}
