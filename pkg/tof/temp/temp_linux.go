// Package temp reads the TMP103 temperature sensors on the sensor board
// over i2c.
package temp

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const i2cSlave = 0x0703 // I2C_SLAVE from linux/i2c-dev.h

const tempRegister = 0x00

type Sensor struct {
	fd int
}

// Open binds the i2c bus device to the sensor's slave address.
func Open(path string, addr int) (*Sensor, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("temp: open %s: %w", path, err)
	}

	if err = unix.IoctlSetInt(fd, i2cSlave, addr); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("temp: bind slave %#02x: %w", addr, err)
	}

	return &Sensor{fd: fd}, nil
}

// Read returns the temperature in degrees Celsius. The TMP103 keeps it as a
// single signed byte in register 0.
func (s *Sensor) Read() (float32, error) {
	reg := []byte{tempRegister}
	if _, err := unix.Write(s.fd, reg); err != nil {
		return 0, fmt.Errorf("temp: select register: %w", err)
	}

	raw := make([]byte, 1)
	if _, err := unix.Read(s.fd, raw); err != nil {
		return 0, fmt.Errorf("temp: read: %w", err)
	}

	return float32(int8(raw[0])), nil
}

func (s *Sensor) Close() error {
	return unix.Close(s.fd)
}
