// Package config resolves the optional motive.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Defaults for unset configuration values.
const (
	DefaultFPS      = 30
	DefaultPort     = 0 // ephemeral
	DefaultPlotSize = 256
	DefaultPlotOut  = "plots"
)

// Config represents the optional motive.yaml configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Demo      DemoConfig      `yaml:"demo"`
	Inspector InspectorConfig `yaml:"inspector"`
	Plot      PlotConfig      `yaml:"plot"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// DemoConfig contains demo command settings.
type DemoConfig struct {
	FPS int `yaml:"fps,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	Port int `yaml:"port,omitempty"`
}

// PlotConfig contains plot command settings.
type PlotConfig struct {
	Size int    `yaml:"size,omitempty"`
	Out  string `yaml:"out,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	FPS        int
	Port       int
	PlotSize   int
	PlotOut    string
}

// LoadOptional reads motive.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "motive.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read motive.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse motive.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads motive.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	fps := cfg.Demo.FPS
	if fps == 0 {
		fps = DefaultFPS
	}
	if fps < 1 || fps > 240 {
		return nil, fmt.Errorf("demo.fps must be between 1 and 240 (got %d)", fps)
	}

	port := cfg.Inspector.Port
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("inspector.port must be between 0 and 65535 (got %d)", port)
	}

	size := cfg.Plot.Size
	if size == 0 {
		size = DefaultPlotSize
	}
	if size < 64 || size > 4096 {
		return nil, fmt.Errorf("plot.size must be between 64 and 4096 (got %d)", size)
	}

	out := strings.TrimSpace(cfg.Plot.Out)
	if out == "" {
		out = DefaultPlotOut
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		FPS:        fps,
		Port:       port,
		PlotSize:   size,
		PlotOut:    out,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "motive_app"
	}
	return base
}
