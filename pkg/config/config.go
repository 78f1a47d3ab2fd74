// Package config loads ripplegrid settings from a TOML or YAML file.
//
// Every key is optional. A key left out of the file leaves the matching
// pipeline option untouched, so command-line flags and built-in defaults
// still apply.
//
//	# ripplegrid.toml
//	delay_per_pixel = 0.004
//	item_count = 16
//	formats = ["svg", "json"]
//	output = "out/ripple"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ripplegrid/pkg/errors"
	"github.com/matzehuels/ripplegrid/pkg/pipeline"
)

// Format names a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File mirrors the keys of a config file. Pointer fields distinguish an
// explicit zero from an absent key.
type File struct {
	DelayPerPixel *float64 `toml:"delay_per_pixel" yaml:"delay_per_pixel"`
	ItemCount     int      `toml:"item_count" yaml:"item_count"`
	OriginIndex   *int     `toml:"origin_index" yaml:"origin_index"`
	Formats       []string `toml:"formats" yaml:"formats"`
	Frames        int      `toml:"frames" yaml:"frames"`
	Duration      *float64 `toml:"duration" yaml:"duration"`
	Ease          string   `toml:"ease" yaml:"ease"`
	Output        string   `toml:"output" yaml:"output"`
}

// FormatFromPath picks the syntax from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateConfigExt(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML, nil
	}
	return FormatYAML, nil
}

// Load reads and validates the config file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data, format)
}

// Parse decodes and validates config data.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s config", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the values present in the file.
func (f *File) Validate() error {
	if f.DelayPerPixel != nil && *f.DelayPerPixel < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "delay_per_pixel must not be negative, got %v", *f.DelayPerPixel)
	}
	if f.ItemCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "item_count must not be negative, got %d", f.ItemCount)
	}
	if f.Frames < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frames must not be negative, got %d", f.Frames)
	}
	if f.Duration != nil && *f.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration must not be negative, got %v", *f.Duration)
	}
	if err := pipeline.ValidateFormats(f.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	if f.Output != "" {
		if err := errors.ValidateOutputPath(f.Output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output")
		}
	}
	return nil
}

// Apply copies the keys present in the file onto opts.
func (f *File) Apply(opts *pipeline.Options) {
	if f.DelayPerPixel != nil {
		opts.DelayPerPixel = *f.DelayPerPixel
	}
	if f.ItemCount > 0 {
		opts.ItemCount = f.ItemCount
	}
	if f.OriginIndex != nil {
		opts.OriginIndex = *f.OriginIndex
	}
	if len(f.Formats) > 0 {
		opts.Formats = append([]string(nil), f.Formats...)
	}
	if f.Frames > 0 {
		opts.Frames = f.Frames
	}
	if f.Duration != nil {
		opts.Duration = *f.Duration
	}
	if f.Ease != "" {
		opts.Ease = f.Ease
	}
}
