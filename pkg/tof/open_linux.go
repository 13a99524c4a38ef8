//go:build linux && (amd64 || arm64)

package tof

import (
	"fmt"
	"strings"

	"github.com/lee20171130/aditof-sdk/pkg/tof/device"
	"github.com/lee20171130/aditof-sdk/pkg/tof/eeprom"
	"github.com/lee20171130/aditof-sdk/pkg/tof/temp"
)

// Open opens one sensor session. The device spec is a pair of filesystem
// paths separated by a semicolon: "capture-device;control-subdevice", for
// example "/dev/video0;/dev/v4l-subdev1".
func Open(spec string) (*Device, error) {
	paths := strings.Split(spec, ";")
	if paths[0] == "" {
		return nil, fmt.Errorf("tof: malformed device spec %q", spec)
	}

	capt, err := device.OpenCapture(paths[0])
	if err != nil {
		return nil, err
	}

	ctrl, err := device.OpenControl(paths[len(paths)-1])
	if err != nil {
		_ = capt.Close()
		return nil, err
	}

	d := New(capt, ctrl)
	d.OpenEeprom = func() (Eeprom, error) {
		return eeprom.Open(EepromPath)
	}
	d.OpenTempSensor = func(addr int) (TempSensor, error) {
		return temp.Open(TempSensorPath, addr)
	}
	return d, nil
}
