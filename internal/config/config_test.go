package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	// No configs/ directory exists in the test working directory, so
	// every value must come from the defaults.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if cfg.DB.Path != "dryer.db" {
		t.Fatalf("db path = %q", cfg.DB.Path)
	}

	th := cfg.Thresholds
	if th.TemperatureMax != 60 || th.TemperatureMin != 50 || th.HumidityMax != 65 {
		t.Fatalf("unexpected thresholds: %+v", th)
	}
	if th.Moisture1Target != 14 || th.Moisture2Target != 14 {
		t.Fatalf("unexpected moisture targets: %+v", th)
	}
	if th.Weight1Max != 25 || th.Weight2Max != 25 {
		t.Fatalf("unexpected weight bounds: %+v", th)
	}

	if cfg.PollInterval() != 5*time.Second {
		t.Fatalf("poll interval = %v", cfg.PollInterval())
	}
	if cfg.StableWindow() != time.Hour {
		t.Fatalf("stable window = %v", cfg.StableWindow())
	}

	if cfg.MQTT.Enabled || cfg.Push.Enabled {
		t.Fatalf("optional integrations must default to disabled: %+v", cfg)
	}
}
