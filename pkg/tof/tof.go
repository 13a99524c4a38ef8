// Package tof is the device-access layer for the AD-96TOF1 time-of-flight
// camera. It drives the sensor's video-capture pipeline and programs the
// analog front-end over the extended-control channel. All methods must be
// called from a single goroutine; the package takes no locks.
package tof

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// control ids understood by the ADDI903x subdevice driver
const (
	cidSetChipConfig = 0xA00A00
	cidReadRegister  = 0xA00A01
)

// PacketSize is the maximum payload of a single extended-control transfer.
// The hardware interprets the payload as an array of 16-bit words.
const PacketSize = 4096

const bufferCount = 4

const frameTimeout = 4 * time.Second

// ErrBusy reports a benign state-machine no-op: starting an already started
// device or stopping an already stopped one. The device state is unchanged.
var ErrBusy = errors.New("tof: device busy")

// Capture is the kernel video-capture interface consumed by Device.
// The mapped memory returned by Mmap is owned by the hardware except
// between a Dequeue and the matching Queue.
type Capture interface {
	SetFormat(width, height uint32) error
	RequestBuffers(count uint32) (uint32, error)
	QueryBuffer(index uint32) (offset, length uint32, err error)
	Mmap(offset, length uint32) ([]byte, error)
	Munmap(b []byte) error
	Queue(index uint32) error
	// Dequeue may fail with EAGAIN or EIO while still reporting a usable
	// buffer index. Callers decide how to treat those.
	Dequeue() (uint32, error)
	StreamOn() error
	StreamOff() error
	WaitFrame(timeout time.Duration) error
	Close() error
}

// Control is the extended-control channel to the AFE. Payloads are at most
// PacketSize bytes. Get seeds the payload with the request and overwrites it
// with the reply.
type Control interface {
	Set(id uint32, payload []byte) error
	Get(id uint32, payload []byte) error
	Close() error
}

// Device is one open sensor session. It owns the mmap buffer pool: a buffer
// is either queued to the hardware or held by GetFrame during a decode,
// never both.
type Device struct {
	// Log receives best-effort teardown warnings. Defaults to a no-op
	// logger.
	Log zerolog.Logger

	// OpenEeprom and OpenTempSensor connect the sidecar sensor drivers.
	// Open wires the platform drivers; both are optional.
	OpenEeprom     func() (Eeprom, error)
	OpenTempSensor func(addr int) (TempSensor, error)

	capt Capture
	ctrl Control

	// bufs length always equals the number of live mappings
	bufs      [][]byte
	frameType FrameType
	started   bool

	pace func()
}

// New wraps an open capture handle and control handle. Use Open to create a
// device from filesystem paths.
func New(capt Capture, ctrl Control) *Device {
	return &Device{
		Log:  zerolog.Nop(),
		capt: capt,
		ctrl: ctrl,
		pace: func() { time.Sleep(100 * time.Microsecond) },
	}
}

// SetFrameType configures the capture format and (re)allocates the buffer
// pool. Requesting the currently configured type with a live pool is a
// no-op. Requesting a different type releases the old pool before the new
// one is mapped, so mappings never leak across a format change.
func (d *Device) SetFrameType(ft FrameType) error {
	if ft == d.frameType {
		if len(d.bufs) > 0 {
			return nil
		}
	} else if len(d.bufs) > 0 {
		if err := d.unmapBuffers(); err != nil {
			return err
		}
	}

	if err := d.capt.SetFormat(ft.Width, ft.Height); err != nil {
		return fmt.Errorf("tof: set pixel format: %w", err)
	}

	count, err := d.capt.RequestBuffers(bufferCount)
	if err != nil {
		return fmt.Errorf("tof: request buffers: %w", err)
	}

	d.bufs = make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		offset, length, err := d.capt.QueryBuffer(i)
		if err != nil {
			return fmt.Errorf("tof: query buffer %d: %w", i, err)
		}

		b, err := d.capt.Mmap(offset, length)
		if err != nil {
			return fmt.Errorf("tof: mmap buffer %d: %w", i, err)
		}

		d.bufs = append(d.bufs, b)
	}

	d.frameType = ft
	return nil
}

func (d *Device) unmapBuffers() error {
	for i, b := range d.bufs {
		if err := d.capt.Munmap(b); err != nil {
			return fmt.Errorf("tof: munmap buffer %d: %w", i, err)
		}
	}
	d.bufs = nil
	return nil
}

// Start queues the whole buffer pool to the hardware and switches streaming
// on. Returns ErrBusy without side effects if already started. On any other
// failure the device stays stopped.
func (d *Device) Start() error {
	if d.started {
		d.Log.Info().Msg("device already started")
		return ErrBusy
	}

	for i := range d.bufs {
		if err := d.capt.Queue(uint32(i)); err != nil {
			return fmt.Errorf("tof: queue buffer %d: %w", i, err)
		}
	}

	if err := d.capt.StreamOn(); err != nil {
		return fmt.Errorf("tof: stream on: %w", err)
	}

	d.started = true
	return nil
}

// Stop switches streaming off. Returns ErrBusy without side effects if
// already stopped. On any other failure the device stays started.
func (d *Device) Stop() error {
	if !d.started {
		d.Log.Info().Msg("device already stopped")
		return ErrBusy
	}

	if err := d.capt.StreamOff(); err != nil {
		return fmt.Errorf("tof: stream off: %w", err)
	}

	d.started = false
	return nil
}

// GetFrame waits up to four seconds for a captured frame, decodes it into
// out and hands the buffer back to the hardware. out must hold width*height
// samples of the configured frame type.
//
// EAGAIN and EIO from the dequeue are kernel timing races, not failures:
// the reported index is still valid and the frame is used.
func (d *Device) GetFrame(out []uint16) error {
	if err := d.capt.WaitFrame(frameTimeout); err != nil {
		return fmt.Errorf("tof: wait frame: %w", err)
	}

	index, err := d.capt.Dequeue()
	if err != nil && !errors.Is(err, syscall.EAGAIN) && !errors.Is(err, syscall.EIO) {
		return fmt.Errorf("tof: dequeue buffer: %w", err)
	}

	if int(index) >= len(d.bufs) {
		return fmt.Errorf("tof: not enough buffers available: index %d, pool %d", index, len(d.bufs))
	}

	src := d.bufs[index]
	width, height := int(d.frameType.Width), int(d.frameType.Height)
	if width == rawFrameWidth {
		unpackRaw(out, src, width, height)
	} else {
		unpackDepthIR(out, src, width, height)
	}

	if err = d.capt.Queue(index); err != nil {
		return fmt.Errorf("tof: requeue buffer %d: %w", index, err)
	}
	return nil
}

// Close releases the session: stops streaming if active, unmaps the buffer
// pool and closes both device handles. Cleanup is best-effort and never
// fails outward; individual errors are logged and swallowed.
func (d *Device) Close() {
	if d.started {
		if err := d.Stop(); err != nil {
			d.Log.Warn().Err(err).Msg("stop on close")
		}
	}

	for i, b := range d.bufs {
		if err := d.capt.Munmap(b); err != nil {
			d.Log.Warn().Err(err).Int("buffer", i).Msg("munmap")
		}
	}
	d.bufs = nil

	if err := d.capt.Close(); err != nil {
		d.Log.Warn().Err(err).Msg("close capture device")
	}
	if err := d.ctrl.Close(); err != nil {
		d.Log.Warn().Err(err).Msg("close control subdevice")
	}
}
