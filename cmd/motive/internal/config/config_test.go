package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, modulePath, yamlBody string) string {
	t.Helper()
	dir := t.TempDir()
	gomod := "module " + modulePath + "\n\ngo 1.24.0\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	if yamlBody != "" {
		if err := os.WriteFile(filepath.Join(dir, "motive.yaml"), []byte(yamlBody), 0o644); err != nil {
			t.Fatalf("write motive.yaml: %v", err)
		}
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "example.com/anim/sparkle", "")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.ModulePath != "example.com/anim/sparkle" {
		t.Errorf("module path = %q", r.ModulePath)
	}
	if r.AppName != "sparkle" {
		t.Errorf("app name = %q, want sparkle", r.AppName)
	}
	if r.FPS != DefaultFPS {
		t.Errorf("fps = %d, want %d", r.FPS, DefaultFPS)
	}
	if r.Port != DefaultPort {
		t.Errorf("port = %d, want %d", r.Port, DefaultPort)
	}
	if r.PlotSize != DefaultPlotSize {
		t.Errorf("plot size = %d, want %d", r.PlotSize, DefaultPlotSize)
	}
	if r.PlotOut != DefaultPlotOut {
		t.Errorf("plot out = %q, want %q", r.PlotOut, DefaultPlotOut)
	}
}

func TestResolveYAMLOverrides(t *testing.T) {
	body := `app:
  name: glimmer
demo:
  fps: 60
inspector:
  port: 9310
plot:
  size: 512
  out: curves
`
	dir := writeProject(t, "example.com/glimmer", body)

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.AppName != "glimmer" {
		t.Errorf("app name = %q", r.AppName)
	}
	if r.FPS != 60 {
		t.Errorf("fps = %d", r.FPS)
	}
	if r.Port != 9310 {
		t.Errorf("port = %d", r.Port)
	}
	if r.PlotSize != 512 {
		t.Errorf("plot size = %d", r.PlotSize)
	}
	if r.PlotOut != "curves" {
		t.Errorf("plot out = %q", r.PlotOut)
	}
}

func TestResolveVersionedModuleName(t *testing.T) {
	dir := writeProject(t, "example.com/pulse/v2", "")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.AppName != "pulse" {
		t.Errorf("app name = %q, want pulse", r.AppName)
	}
}

func TestResolveInvalidFPS(t *testing.T) {
	dir := writeProject(t, "example.com/m", "demo:\n  fps: 500\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for fps out of range")
	}
}

func TestResolveInvalidPort(t *testing.T) {
	dir := writeProject(t, "example.com/m", "inspector:\n  port: 70000\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for port out of range")
	}
}

func TestResolveInvalidPlotSize(t *testing.T) {
	dir := writeProject(t, "example.com/m", "plot:\n  size: 8\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for plot size out of range")
	}
}

func TestResolveMalformedYAML(t *testing.T) {
	dir := writeProject(t, "example.com/m", "demo: [not a map\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}
	if cfg.App.Name != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestResolveNoGoMod(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error without go.mod")
	}
}
