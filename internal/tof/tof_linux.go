//go:build linux && (amd64 || arm64)

package tof

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/lee20171130/aditof-sdk/internal/app"
	"github.com/lee20171130/aditof-sdk/pkg/tof"
)

func Init() {
	var cfg struct {
		Mod struct {
			Device    string `yaml:"device"`
			FrameType string `yaml:"frame_type"`
			Firmware  string `yaml:"firmware"`
		} `yaml:"tof"`
	}

	app.LoadConfig(&cfg)

	log = app.GetLogger("tof")

	if cfg.Mod.Device == "" {
		return
	}

	d, err := tof.Open(cfg.Mod.Device)
	if err != nil {
		log.Error().Err(err).Msg("open device")
		return
	}
	d.Log = log

	if cfg.Mod.Firmware != "" {
		firmware, err := os.ReadFile(cfg.Mod.Firmware)
		if err != nil {
			log.Error().Err(err).Msg("read firmware")
		} else if err = d.Program(firmware); err != nil {
			log.Error().Err(err).Msg("program afe")
		}
	}

	kind := cfg.Mod.FrameType
	if kind == "" {
		kind = "depth_ir"
	}
	ft, ok := tof.FrameTypeByKind(kind)
	if !ok {
		log.Error().Str("frame_type", kind).Msg("unknown frame type")
		d.Close()
		return
	}

	if err = d.SetFrameType(ft); err != nil {
		log.Error().Err(err).Msg("set frame type")
		d.Close()
		return
	}

	dev = d
	log.Info().Str("device", cfg.Mod.Device).Str("frame_type", ft.Kind).Msg("sensor ready")
}

// Get returns the open device, or nil when the module is not configured.
func Get() *tof.Device {
	return dev
}

func Shutdown() {
	if dev != nil {
		dev.Close()
		dev = nil
	}
}

var log zerolog.Logger
var dev *tof.Device
