package tof

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEeprom struct {
	cells   map[uint32][]byte
	readErr error
	closed  int
}

func (e *fakeEeprom) Read(addr uint32, p []byte) error {
	if e.readErr != nil {
		return e.readErr
	}
	copy(p, e.cells[addr])
	return nil
}

func (e *fakeEeprom) Write(addr uint32, p []byte) error {
	e.cells[addr] = append([]byte(nil), p...)
	return nil
}

func (e *fakeEeprom) Close() error {
	e.closed++
	return nil
}

type fakeTempSensor struct {
	addr   int
	value  float32
	closed int
}

func (s *fakeTempSensor) Read() (float32, error) { return s.value, nil }
func (s *fakeTempSensor) Close() error           { s.closed++; return nil }

func TestEepromAccess(t *testing.T) {
	e := &fakeEeprom{cells: map[uint32][]byte{}}
	d := New(&fakeCapture{}, &fakeControl{})
	d.OpenEeprom = func() (Eeprom, error) { return e, nil }

	require.NoError(t, d.WriteEeprom(0x100, []byte{1, 2, 3}))

	p := make([]byte, 3)
	require.NoError(t, d.ReadEeprom(0x100, p))
	require.Equal(t, []byte{1, 2, 3}, p)

	require.Equal(t, 2, e.closed, "handle closed after every call")
}

func TestEepromReadFailureStillCloses(t *testing.T) {
	e := &fakeEeprom{readErr: syscall.EIO}
	d := New(&fakeCapture{}, &fakeControl{})
	d.OpenEeprom = func() (Eeprom, error) { return e, nil }

	require.Error(t, d.ReadEeprom(0, make([]byte, 8)))
	require.Equal(t, 1, e.closed)
}

func TestReadTemps(t *testing.T) {
	sensors := map[int]*fakeTempSensor{
		afeTempAddr:   {value: 41},
		laserTempAddr: {value: 33.5},
	}

	d := New(&fakeCapture{}, &fakeControl{})
	d.OpenTempSensor = func(addr int) (TempSensor, error) {
		s := sensors[addr]
		s.addr = addr
		return s, nil
	}

	afe, err := d.ReadAfeTemp()
	require.NoError(t, err)
	require.Equal(t, float32(41), afe)
	require.Equal(t, 0x4b, sensors[afeTempAddr].addr)

	laser, err := d.ReadLaserTemp()
	require.NoError(t, err)
	require.Equal(t, float32(33.5), laser)
	require.Equal(t, 0x49, sensors[laserTempAddr].addr)

	require.Equal(t, 1, sensors[afeTempAddr].closed)
	require.Equal(t, 1, sensors[laserTempAddr].closed)
}

func TestSidecarUnconfigured(t *testing.T) {
	d := New(&fakeCapture{}, &fakeControl{})

	require.Error(t, d.ReadEeprom(0, make([]byte, 1)))
	_, err := d.ReadAfeTemp()
	require.Error(t, err)
}
