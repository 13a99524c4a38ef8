package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadConfig(t *testing.T) {
	configs = [][]byte{
		[]byte("tof:\n  device: /dev/video0;/dev/v4l-subdev1\n  frame_type: raw\n"),
		[]byte("tof:\n  frame_type: depth_ir\n"),
	}
	defer func() { configs = nil }()

	var cfg struct {
		Mod struct {
			Device    string `yaml:"device"`
			FrameType string `yaml:"frame_type"`
		} `yaml:"tof"`
	}

	LoadConfig(&cfg)

	if cfg.Mod.Device != "/dev/video0;/dev/v4l-subdev1" {
		t.Errorf("unexpected device: %s", cfg.Mod.Device)
	}

	// later sources override earlier ones
	if cfg.Mod.FrameType != "depth_ir" {
		t.Errorf("unexpected frame_type: %s", cfg.Mod.FrameType)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format string
		level  string
	}{
		{"json", "info"},
		{"text", "debug"},
	}

	for _, tc := range tests {
		logger := NewLogger(tc.format, tc.level)

		lvl := logger.GetLevel()
		expectedLvl, _ := zerolog.ParseLevel(tc.level)
		if lvl != expectedLvl {
			t.Errorf("Expected level %s, got %s", tc.level, lvl.String())
		}
	}
}

func TestGetLogger(t *testing.T) {
	modules = map[string]string{
		"tof":    "debug",
		"device": "warn",
	}

	logger1 := GetLogger("tof")
	if logger1.GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level for tof, got %s", logger1.GetLevel().String())
	}

	logger2 := GetLogger("device")
	if logger2.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level for device, got %s", logger2.GetLevel().String())
	}

	logger3 := GetLogger("nonexistent")
	if logger3.GetLevel() != log.Logger.GetLevel() {
		t.Errorf("Expected default logger level for nonexistent module, got %s", logger3.GetLevel().String())
	}
}
