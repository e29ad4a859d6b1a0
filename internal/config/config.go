// Package config loads model defaults for the command-line tools.
// The library itself is configured through functional options; this
// package only maps a JSON defaults file onto those options so partial
// configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ModelConfig holds the tunable evaluation parameters. All fields are
// pointers so a JSON file may override any subset and leave the rest at
// their defaults.
type ModelConfig struct {
	Threads       *int     `json:"threads,omitempty"`
	Interpolate   *bool    `json:"interpolate,omitempty"`
	Supersampling *int     `json:"supersampling,omitempty"`
	ExposureTime  *float64 `json:"exposure_time,omitempty"`
	KMin          *float64 `json:"k_min,omitempty"`
	KMax          *float64 `json:"k_max,omitempty"`
	TableKNodes   *int     `json:"table_k_nodes,omitempty"`
	TableZNodes   *int     `json:"table_z_nodes,omitempty"`
}

// Defaults mirrors the model's built-in configuration: all cores, no
// interpolation, a single short-cadence exposure, and the standard table
// coverage.
func Defaults() ModelConfig {
	threads := 0
	interpolate := false
	nss := 1
	exptime := 0.020433598
	kmin, kmax := 0.07, 0.13
	nk, nz := 128, 256
	return ModelConfig{
		Threads:       &threads,
		Interpolate:   &interpolate,
		Supersampling: &nss,
		ExposureTime:  &exptime,
		KMin:          &kmin,
		KMax:          &kmax,
		TableKNodes:   &nk,
		TableZNodes:   &nz,
	}
}

// Load reads a ModelConfig from a JSON file. The path must carry a
// .json extension and the file is capped at 1MB.
func Load(path string) (*ModelConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Merge overlays the non-nil fields of override onto base and returns
// the result.
func Merge(base, override ModelConfig) ModelConfig {
	out := base
	if override.Threads != nil {
		out.Threads = override.Threads
	}
	if override.Interpolate != nil {
		out.Interpolate = override.Interpolate
	}
	if override.Supersampling != nil {
		out.Supersampling = override.Supersampling
	}
	if override.ExposureTime != nil {
		out.ExposureTime = override.ExposureTime
	}
	if override.KMin != nil {
		out.KMin = override.KMin
	}
	if override.KMax != nil {
		out.KMax = override.KMax
	}
	if override.TableKNodes != nil {
		out.TableKNodes = override.TableKNodes
	}
	if override.TableZNodes != nil {
		out.TableZNodes = override.TableZNodes
	}
	return out
}
