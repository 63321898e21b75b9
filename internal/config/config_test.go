package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.VNCPort != 6080 || cfg.CodeServerPort != 8443 {
		t.Errorf("ports = %d/%d", cfg.VNCPort, cfg.CodeServerPort)
	}
	if cfg.StopTimeoutSeconds != 30 {
		t.Errorf("StopTimeoutSeconds = %d", cfg.StopTimeoutSeconds)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SANDBOX_IMAGE", "custom:tag")
	t.Setenv("SANDBOX_VNC_PORT", "7000")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	if cfg.SandboxImage != "custom:tag" {
		t.Errorf("SandboxImage = %q", cfg.SandboxImage)
	}
	if cfg.VNCPort != 7000 {
		t.Errorf("VNCPort = %d", cfg.VNCPort)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("invalid int must fall back, got %d", cfg.RedisDB)
	}
}
