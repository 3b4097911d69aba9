package config

import (
	"reflect"
	"testing"
)

func TestLoadAnalysisDefaults(t *testing.T) {
	t.Setenv("MONITORED_BRAND", "")
	t.Setenv("COMPETITOR_BRANDS", "")
	t.Setenv("KEYWORD_TOP_K", "")
	t.Setenv("CRISIS_NEGATIVE_THRESHOLD", "")
	t.Setenv("ALERTS_ENABLED", "")

	cfg := Load()
	if cfg.MonitoredBrand != "Zenith Bank" {
		t.Fatalf("expected default monitored brand Zenith Bank, got %q", cfg.MonitoredBrand)
	}
	want := []string{"Fidelity Bank", "GT Bank", "Opay"}
	if !reflect.DeepEqual(cfg.Competitors, want) {
		t.Fatalf("expected default competitors %v, got %v", want, cfg.Competitors)
	}
	if cfg.KeywordTopK != 10 {
		t.Fatalf("expected default keyword top k 10, got %d", cfg.KeywordTopK)
	}
	if cfg.CrisisThreshold != 0.4 {
		t.Fatalf("expected default crisis threshold 0.4, got %v", cfg.CrisisThreshold)
	}
	if cfg.AlertsEnabled {
		t.Fatal("expected alerts disabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MONITORED_BRAND", "Acme Corp")
	t.Setenv("COMPETITOR_BRANDS", "Globex, Initech ,")
	t.Setenv("KEYWORD_TOP_K", "25")
	t.Setenv("ANALYSIS_WORKERS", "4")
	t.Setenv("CRISIS_NEGATIVE_THRESHOLD", "0.25")
	t.Setenv("ALERTS_ENABLED", "true")

	cfg := Load()
	if cfg.MonitoredBrand != "Acme Corp" {
		t.Fatalf("expected monitored brand override, got %q", cfg.MonitoredBrand)
	}
	want := []string{"Globex", "Initech"}
	if !reflect.DeepEqual(cfg.Competitors, want) {
		t.Fatalf("expected competitors %v, got %v", want, cfg.Competitors)
	}
	if cfg.KeywordTopK != 25 {
		t.Fatalf("expected keyword top k 25, got %d", cfg.KeywordTopK)
	}
	if cfg.AnalysisWorkers != 4 {
		t.Fatalf("expected analysis workers 4, got %d", cfg.AnalysisWorkers)
	}
	if cfg.CrisisThreshold != 0.25 {
		t.Fatalf("expected crisis threshold 0.25, got %v", cfg.CrisisThreshold)
	}
	if !cfg.AlertsEnabled {
		t.Fatal("expected alerts enabled")
	}
}

func TestLoadIgnoresMalformedNumerics(t *testing.T) {
	t.Setenv("KEYWORD_TOP_K", "lots")
	t.Setenv("CRISIS_NEGATIVE_THRESHOLD", "high")

	cfg := Load()
	if cfg.KeywordTopK != 10 {
		t.Fatalf("expected fallback keyword top k 10, got %d", cfg.KeywordTopK)
	}
	if cfg.CrisisThreshold != 0.4 {
		t.Fatalf("expected fallback crisis threshold 0.4, got %v", cfg.CrisisThreshold)
	}
}
