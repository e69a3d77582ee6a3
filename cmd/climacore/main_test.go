package main

import (
	"testing"
)

func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("CLIMACORE_CONFIG", "")

	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}
}

func TestGetConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("CLIMACORE_CONFIG", "/etc/climacore/config.yaml")

	if got := getConfigPath(); got != "/etc/climacore/config.yaml" {
		t.Errorf("getConfigPath() = %q", got)
	}
}
