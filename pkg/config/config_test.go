package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Months   int      `yaml:"months"`
}

func (s *sample) Validate() error {
	if s.Months < 3 {
		return errors.New("months too small")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_KeepsDefaultsAndExpandsEnv(t *testing.T) {
	t.Setenv("VAULT_NAME", "notes")
	p := writeConfig(t, "name: ${VAULT_NAME}\npatterns: [\"templates/*\"]\n")

	cfg := &sample{Months: 12}
	if err := Load(p, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "notes" || cfg.Months != 12 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "templates/*" {
		t.Errorf("patterns = %v", cfg.Patterns)
	}
}

func TestLoad_Validates(t *testing.T) {
	p := writeConfig(t, "months: 1\n")
	err := Load(p, &sample{})
	if err == nil || !strings.Contains(err.Error(), "validation") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &sample{Months: 3}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithDefaults_FallsBackToTarget(t *testing.T) {
	cfg := &sample{Name: "default", Months: 6}
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"), "", cfg); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Name != "default" {
		t.Errorf("name = %q", cfg.Name)
	}

	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"), "", &sample{}); err == nil {
		t.Error("defaults must still be validated")
	}
}

func TestLoadWithDefaults_DefaultFile(t *testing.T) {
	def := writeConfig(t, "name: fallback\nmonths: 4\n")
	cfg := &sample{}
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"), def, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "fallback" || cfg.Months != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
}
