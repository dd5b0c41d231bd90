// seehuhn.de/go/visibility - 2D visibility polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the settings of the visibility command from a YAML
// file.
//
// Example:
//
//	sort: stable
//	insertion_threshold: 16
//	frame_margin: 500
//	mask:
//	  images: true
//	  resolution: 2
//	  max_pixels: 1000000
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/scene"
)

// Config holds all settings.  Fields left out of the YAML file keep their
// default values.
type Config struct {
	Sort               visibility.SortMode `yaml:"sort"`
	InsertionThreshold int                 `yaml:"insertion_threshold"`
	FrameMargin        float64             `yaml:"frame_margin"`

	// Mask controls the rasterised visibility polygons.  Visible
	// fractions are always computed; Images additionally writes every mask
	// as a PNG file.
	Mask struct {
		Images     bool    `yaml:"images"`
		Resolution float64 `yaml:"resolution"`
		MaxPixels  int     `yaml:"max_pixels"`
	} `yaml:"mask"`

	// YDown selects screen coordinates for the PDF output.
	YDown bool `yaml:"y_down"`
}

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{
		Sort:               visibility.SortFast,
		InsertionThreshold: visibility.DefaultInsertionThreshold,
		FrameMargin:        visibility.DefaultFrameMargin,
		YDown:              true,
	}
	c.Mask.Resolution = scene.DefaultMaskResolution
	c.Mask.MaxPixels = scene.DefaultMaskPixels
	return c
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) check() error {
	opt := c.Options()
	if err := opt.Validate(); err != nil {
		return err
	}
	if !(c.Mask.Resolution > 0) || math.IsInf(c.Mask.Resolution, 0) {
		return errors.New("mask resolution must be positive")
	}
	if c.Mask.MaxPixels <= 0 {
		return errors.New("mask pixel limit must be positive")
	}
	return nil
}

// Options returns the settings for [visibility.Compute].
func (c *Config) Options() visibility.Options {
	return visibility.Options{
		Sort:               c.Sort,
		InsertionThreshold: c.InsertionThreshold,
		FrameMargin:        c.FrameMargin,
	}
}

// Apply copies the settings into p.
func (c *Config) Apply(p *scene.Processor) {
	p.Options = c.Options()
	p.MaskResolution = c.Mask.Resolution
	p.MaskPixels = c.Mask.MaxPixels
}
