//go:build linux && (amd64 || arm64)

// Package device implements the capture and control halves of the sensor
// over the V4L2 multiplanar kernel interface.
package device

import (
	"fmt"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/lee20171130/aditof-sdk/pkg/ioctl"
)

// one extended-control transfer, always a full packet on the wire
const ctrlPacketSize = 4096

// Capture drives a V4L2 multiplanar video-capture device.
type Capture struct {
	fd int
}

func OpenCapture(path string) (*Capture, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", path, err)
	}

	c := &Capture{fd: fd}

	caps, err := c.capabilities()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("device: %s query capabilities: %w", path, err)
	}
	if caps&(V4L2_CAP_VIDEO_CAPTURE|V4L2_CAP_VIDEO_CAPTURE_MPLANE) == 0 {
		_ = c.Close()
		return nil, fmt.Errorf("device: %s is not a video capture device", path)
	}
	if caps&V4L2_CAP_STREAMING == 0 {
		_ = c.Close()
		return nil, fmt.Errorf("device: %s does not support streaming i/o", path)
	}

	return c, nil
}

func (c *Capture) capabilities() (uint32, error) {
	q := v4l2_capability{}
	if err := xioctl(c.fd, VIDIOC_QUERYCAP, unsafe.Pointer(&q)); err != nil {
		return 0, err
	}
	return q.capabilities, nil
}

// Card returns the device name reported by the driver.
func (c *Capture) Card() (string, error) {
	q := v4l2_capability{}
	if err := xioctl(c.fd, VIDIOC_QUERYCAP, unsafe.Pointer(&q)); err != nil {
		return "", err
	}
	return ioctl.Str(q.card[:]), nil
}

func (c *Capture) SetFormat(width, height uint32) error {
	f := v4l2_format{
		typ: V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE,
		pix: v4l2_pix_format_mplane{
			width:  width,
			height: height,
		},
	}
	return xioctl(c.fd, VIDIOC_S_FMT, unsafe.Pointer(&f))
}

func (c *Capture) RequestBuffers(count uint32) (uint32, error) {
	rb := v4l2_requestbuffers{
		count:  count,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err := xioctl(c.fd, VIDIOC_REQBUFS, unsafe.Pointer(&rb)); err != nil {
		return 0, err
	}
	return rb.count, nil
}

func (c *Capture) QueryBuffer(index uint32) (offset, length uint32, err error) {
	var plane v4l2_plane
	qb := v4l2_buffer{
		index:  index,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE,
		memory: V4L2_MEMORY_MMAP,
		planes: uintptr(unsafe.Pointer(&plane)),
		length: 1,
	}
	err = xioctl(c.fd, VIDIOC_QUERYBUF, unsafe.Pointer(&qb))
	runtime.KeepAlive(&plane)
	if err != nil {
		return 0, 0, err
	}
	return plane.mem_offset, plane.length, nil
}

func (c *Capture) Mmap(offset, length uint32) ([]byte, error) {
	return unix.Mmap(c.fd, int64(offset), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (c *Capture) Munmap(b []byte) error {
	return unix.Munmap(b)
}

func (c *Capture) Queue(index uint32) error {
	var plane v4l2_plane
	qb := v4l2_buffer{
		index:  index,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE,
		memory: V4L2_MEMORY_MMAP,
		planes: uintptr(unsafe.Pointer(&plane)),
		length: 1,
	}
	err := xioctl(c.fd, VIDIOC_QBUF, unsafe.Pointer(&qb))
	runtime.KeepAlive(&plane)
	return err
}

// Dequeue takes one filled buffer from the capture queue. On EAGAIN and EIO
// the returned index is still the one reported by the driver; the caller
// decides whether those are fatal.
func (c *Capture) Dequeue() (uint32, error) {
	var plane v4l2_plane
	dq := v4l2_buffer{
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE,
		memory: V4L2_MEMORY_MMAP,
		planes: uintptr(unsafe.Pointer(&plane)),
		length: 1,
	}
	err := xioctl(c.fd, VIDIOC_DQBUF, unsafe.Pointer(&dq))
	runtime.KeepAlive(&plane)
	return dq.index, err
}

func (c *Capture) StreamOn() error {
	typ := uint32(V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE)
	return xioctl(c.fd, VIDIOC_STREAMON, unsafe.Pointer(&typ))
}

func (c *Capture) StreamOff() error {
	typ := uint32(V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE)
	return xioctl(c.fd, VIDIOC_STREAMOFF, unsafe.Pointer(&typ))
}

// WaitFrame blocks until the device has a filled buffer or the timeout
// expires.
func (c *Capture) WaitFrame(timeout time.Duration) error {
	var fds unix.FdSet
	fds.Set(c.fd)

	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	n, err := unix.Select(c.fd+1, &fds, nil, nil, &tv)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("device: no frame within %s", timeout)
	}
	return nil
}

func (c *Capture) Close() error {
	return unix.Close(c.fd)
}

// Control is the extended-control channel of the sensor subdevice.
type Control struct {
	fd int
}

func OpenControl(path string) (*Control, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("device: open %s: %w", path, err)
	}
	return &Control{fd: fd}, nil
}

func (c *Control) Set(id uint32, payload []byte) error {
	return c.ext(VIDIOC_S_EXT_CTRLS, id, payload)
}

func (c *Control) Get(id uint32, payload []byte) error {
	return c.ext(VIDIOC_G_EXT_CTRLS, id, payload)
}

// ext runs one extended-control transfer. The driver always sees a full
// packet: shorter payloads go into a zeroed scratch buffer, and whatever
// the driver wrote back is copied out again.
func (c *Control) ext(req uint, id uint32, payload []byte) error {
	if len(payload) > ctrlPacketSize {
		return fmt.Errorf("device: control payload %d exceeds packet size", len(payload))
	}

	buf := make([]byte, ctrlPacketSize)
	copy(buf, payload)

	ctrl := extControl(id, ctrlPacketSize, unsafe.Pointer(&buf[0]))
	ctrls := v4l2_ext_controls{
		count:    1,
		controls: unsafe.Pointer(&ctrl),
	}

	err := xioctl(c.fd, req, unsafe.Pointer(&ctrls))
	runtime.KeepAlive(buf)
	if err != nil {
		return err
	}

	copy(payload, buf)
	return nil
}

func (c *Control) Close() error {
	return unix.Close(c.fd)
}

func xioctl(fd int, req uint, arg unsafe.Pointer) error {
	for {
		err := ioctl.Ioctl(fd, req, arg)
		if err != syscall.EINTR {
			return err
		}
	}
}
