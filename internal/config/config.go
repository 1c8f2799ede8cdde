// Package config loads the settings of the climada command line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"climada/internal/loader/excel"
	"climada/internal/logger"
)

type PlotConfig struct {
	WidthCm   float64 `yaml:"width_cm" env:"CLIMADA_PLOT_WIDTH"`
	HeightCm  float64 `yaml:"height_cm" env:"CLIMADA_PLOT_HEIGHT"`
	OutputDir string  `yaml:"output_dir" env:"CLIMADA_PLOT_DIR"`
}

// Size returns the image size.
func (p PlotConfig) Size() (width, height vg.Length) {
	return vg.Length(p.WidthCm) * vg.Centimeter, vg.Length(p.HeightCm) * vg.Centimeter
}

type Config struct {
	Logger      logger.LoggerConfig `yaml:"logger"`
	Plot        PlotConfig          `yaml:"plot"`
	DiscRates   excel.VarNames      `yaml:"disc_rates"`
	ImpactFuncs excel.VarNames      `yaml:"impact_funcs"`
}

func Default() Config {
	return Config{
		Logger: logger.DefaultConfig(),
		Plot: PlotConfig{
			WidthCm:   16,
			HeightCm:  12,
			OutputDir: ".",
		},
		DiscRates:   excel.DefaultDiscRatesVarNames(),
		ImpactFuncs: excel.DefaultImpactFuncsVarNames(),
	}
}

// Load reads path on top of Default and applies the environment. An empty
// path only applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if cfg, err = Parse(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a YAML config on top of Default: keys absent from the
// document keep their default, column maps are merged. Unknown keys are
// errors.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides c with CLIMADA_* variables.
func (c Config) ApplyEnv() Config {
	c.Logger = logger.ConfigFromEnv(c.Logger)
	if v, err := strconv.ParseFloat(os.Getenv("CLIMADA_PLOT_WIDTH"), 64); err == nil {
		c.Plot.WidthCm = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("CLIMADA_PLOT_HEIGHT"), 64); err == nil {
		c.Plot.HeightCm = v
	}
	if dir := os.Getenv("CLIMADA_PLOT_DIR"); dir != "" {
		c.Plot.OutputDir = dir
	}
	return c
}

func (c Config) Validate() error {
	if c.Plot.WidthCm <= 0 || c.Plot.HeightCm <= 0 {
		return fmt.Errorf("invalid plot size %vx%v cm", c.Plot.WidthCm, c.Plot.HeightCm)
	}
	if c.DiscRates.SheetName == "" || c.ImpactFuncs.SheetName == "" {
		return errors.New("sheet names must not be empty")
	}
	return nil
}
