package tof

import (
	"errors"
	"fmt"
)

// sidecar device locations on the DragonBoard 410c carrier
const (
	EepromPath     = "/sys/bus/i2c/devices/0-0056/eeprom"
	TempSensorPath = "/dev/i2c-1"

	afeTempAddr   = 0x4b
	laserTempAddr = 0x49
)

// Eeprom is the calibration EEPROM driver contract.
type Eeprom interface {
	Read(addr uint32, p []byte) error
	Write(addr uint32, p []byte) error
	Close() error
}

// TempSensor is the temperature sensor driver contract.
type TempSensor interface {
	Read() (float32, error)
	Close() error
}

var errNoDriver = errors.New("tof: driver not configured")

// ReadEeprom reads len(p) bytes of calibration data starting at addr. The
// EEPROM device is opened for the duration of the call and always closed.
func (d *Device) ReadEeprom(addr uint32, p []byte) error {
	if d.OpenEeprom == nil {
		return fmt.Errorf("eeprom: %w", errNoDriver)
	}

	e, err := d.OpenEeprom()
	if err != nil {
		return fmt.Errorf("tof: eeprom open: %w", err)
	}
	defer d.closeQuiet(e, "eeprom")

	if err = e.Read(addr, p); err != nil {
		return fmt.Errorf("tof: eeprom read: %w", err)
	}
	return nil
}

// WriteEeprom writes p at addr with the same open/close discipline as
// ReadEeprom.
func (d *Device) WriteEeprom(addr uint32, p []byte) error {
	if d.OpenEeprom == nil {
		return fmt.Errorf("eeprom: %w", errNoDriver)
	}

	e, err := d.OpenEeprom()
	if err != nil {
		return fmt.Errorf("tof: eeprom open: %w", err)
	}
	defer d.closeQuiet(e, "eeprom")

	if err = e.Write(addr, p); err != nil {
		return fmt.Errorf("tof: eeprom write: %w", err)
	}
	return nil
}

// ReadAfeTemp returns the AFE die temperature in degrees Celsius.
func (d *Device) ReadAfeTemp() (float32, error) {
	return d.readTemp(afeTempAddr, "afe")
}

// ReadLaserTemp returns the laser board temperature in degrees Celsius.
func (d *Device) ReadLaserTemp() (float32, error) {
	return d.readTemp(laserTempAddr, "laser")
}

func (d *Device) readTemp(addr int, role string) (float32, error) {
	if d.OpenTempSensor == nil {
		return 0, fmt.Errorf("%s temp sensor: %w", role, errNoDriver)
	}

	s, err := d.OpenTempSensor(addr)
	if err != nil {
		return 0, fmt.Errorf("tof: %s temp sensor open: %w", role, err)
	}
	defer d.closeQuiet(s, role+" temp sensor")

	t, err := s.Read()
	if err != nil {
		return 0, fmt.Errorf("tof: %s temp sensor read: %w", role, err)
	}
	return t, nil
}

func (d *Device) closeQuiet(c interface{ Close() error }, what string) {
	if err := c.Close(); err != nil {
		d.Log.Warn().Err(err).Msg("close " + what)
	}
}
