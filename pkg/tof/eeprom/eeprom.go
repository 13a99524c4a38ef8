// Package eeprom reads and writes the calibration EEPROM exposed by the
// kernel as a sysfs attribute.
package eeprom

import (
	"fmt"
	"os"
)

type Eeprom struct {
	f *os.File
}

func Open(path string) (*Eeprom, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("eeprom: open %s: %w", path, err)
	}
	return &Eeprom{f: f}, nil
}

// Read fills p starting at cell address addr.
func (e *Eeprom) Read(addr uint32, p []byte) error {
	if _, err := e.f.ReadAt(p, int64(addr)); err != nil {
		return fmt.Errorf("eeprom: read %d bytes at %#x: %w", len(p), addr, err)
	}
	return nil
}

// Write stores p starting at cell address addr.
func (e *Eeprom) Write(addr uint32, p []byte) error {
	if _, err := e.f.WriteAt(p, int64(addr)); err != nil {
		return fmt.Errorf("eeprom: write %d bytes at %#x: %w", len(p), addr, err)
	}
	return nil
}

func (e *Eeprom) Close() error {
	return e.f.Close()
}
