//go:build linux && (amd64 || arm64)

package device

import (
	"encoding/binary"
	"unsafe"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/videodev2.h
// 64-bit layouts; v4l2_buffer embeds a struct timeval, so the request codes
// differ from the 32-bit ones.

const (
	VIDIOC_QUERYCAP  = 0x80685600
	VIDIOC_S_FMT     = 0xc0d05605
	VIDIOC_REQBUFS   = 0xc0145608
	VIDIOC_QUERYBUF  = 0xc0585609
	VIDIOC_QBUF      = 0xc058560f
	VIDIOC_DQBUF     = 0xc0585611
	VIDIOC_STREAMON  = 0x40045612
	VIDIOC_STREAMOFF = 0x40045613

	VIDIOC_G_EXT_CTRLS = 0xc0205647
	VIDIOC_S_EXT_CTRLS = 0xc0205648
)

const (
	V4L2_BUF_TYPE_VIDEO_CAPTURE_MPLANE = 9
	V4L2_FIELD_NONE                    = 1
	V4L2_MEMORY_MMAP                   = 1

	V4L2_CAP_VIDEO_CAPTURE        = 0x00000001
	V4L2_CAP_VIDEO_CAPTURE_MPLANE = 0x00001000
	V4L2_CAP_STREAMING            = 0x04000000
)

type v4l2_capability struct {
	driver       [16]byte
	card         [32]byte
	bus_info     [32]byte
	version      uint32
	capabilities uint32
	device_caps  uint32
	reserved     [3]uint32
}

type v4l2_format struct {
	typ uint32                 // 0
	_   [4]byte                // 4, union alignment
	pix v4l2_pix_format_mplane // 8
	_   [8]byte                // pad fmt union to 200
}

type v4l2_pix_format_mplane struct {
	width        uint32                   // 0
	height       uint32                   // 4
	pixelformat  uint32                   // 8
	field        uint32                   // 12
	colorspace   uint32                   // 16
	plane_fmt    [8]v4l2_plane_pix_format // 20
	num_planes   uint8                    // 180
	flags        uint8                    // 181
	ycbcr_enc    uint8                    // 182
	quantization uint8                    // 183
	xfer_func    uint8                    // 184
	reserved     [7]uint8                 // 185
}

type v4l2_plane_pix_format struct {
	sizeimage    uint32
	bytesperline uint32
	reserved     [6]uint16
}

type v4l2_requestbuffers struct {
	count        uint32
	typ          uint32
	memory       uint32
	capabilities uint32
	flags        uint8
	reserved     [3]uint8
}

type v4l2_buffer struct {
	index      uint32        // 0
	typ        uint32        // 4
	bytesused  uint32        // 8
	flags      uint32        // 12
	field      uint32        // 16
	_          [4]byte       // 20
	timestamp  [16]byte      // 24, struct timeval
	timecode   v4l2_timecode // 40
	sequence   uint32        // 56
	memory     uint32        // 60
	planes     uintptr       // 64, union: mem offset / userptr / planes
	length     uint32        // 72
	reserved2  uint32        // 76
	request_fd uint32        // 80
	_          [4]byte       // 84
}

type v4l2_timecode struct {
	typ      uint32
	flags    uint32
	frames   uint8
	seconds  uint8
	minutes  uint8
	hours    uint8
	userbits [4]uint8
}

type v4l2_plane struct {
	bytesused   uint32     // 0
	length      uint32     // 4
	mem_offset  uint32     // 8, union with userptr / fd
	_           [4]byte    // 12
	data_offset uint32     // 16
	reserved    [11]uint32 // 20
}

// v4l2_ext_control is __attribute__((packed)) in the kernel headers, which
// no 64-bit Go struct can mirror: the payload pointer sits at byte offset
// 12. The record is encoded by hand instead.
type v4l2_ext_control [20]byte

func extControl(id, size uint32, payload unsafe.Pointer) (c v4l2_ext_control) {
	binary.LittleEndian.PutUint32(c[0:], id)
	binary.LittleEndian.PutUint32(c[4:], size)
	binary.LittleEndian.PutUint64(c[12:], uint64(uintptr(payload)))
	return
}

type v4l2_ext_controls struct {
	which      uint32         // 0
	count      uint32         // 4
	error_idx  uint32         // 8
	request_fd int32          // 12
	reserved   uint32         // 16
	_          [4]byte        // 20
	controls   unsafe.Pointer // 24
}
