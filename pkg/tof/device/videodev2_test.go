//go:build linux && (amd64 || arm64)

package device

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	require.Equal(t, 104, int(unsafe.Sizeof(v4l2_capability{})))
	require.Equal(t, 208, int(unsafe.Sizeof(v4l2_format{})))
	require.Equal(t, 192, int(unsafe.Sizeof(v4l2_pix_format_mplane{})))
	require.Equal(t, 20, int(unsafe.Sizeof(v4l2_requestbuffers{})))
	require.Equal(t, 88, int(unsafe.Sizeof(v4l2_buffer{})))
	require.Equal(t, 16, int(unsafe.Sizeof(v4l2_timecode{})))
	require.Equal(t, 64, int(unsafe.Sizeof(v4l2_plane{})))
	require.Equal(t, 20, int(unsafe.Sizeof(v4l2_ext_control{})))
	require.Equal(t, 32, int(unsafe.Sizeof(v4l2_ext_controls{})))
}

func TestOffsets(t *testing.T) {
	var b v4l2_buffer
	require.Equal(t, uintptr(24), unsafe.Offsetof(b.timestamp))
	require.Equal(t, uintptr(56), unsafe.Offsetof(b.sequence))
	require.Equal(t, uintptr(64), unsafe.Offsetof(b.planes))
	require.Equal(t, uintptr(72), unsafe.Offsetof(b.length))

	var cs v4l2_ext_controls
	require.Equal(t, uintptr(24), unsafe.Offsetof(cs.controls))
}

func TestExtControl(t *testing.T) {
	buf := make([]byte, 4)
	c := extControl(0xA00A00, 4096, unsafe.Pointer(&buf[0]))

	require.Equal(t, byte(0x00), c[0])
	require.Equal(t, byte(0x0A), c[1])
	require.Equal(t, byte(0xA0), c[2])
	require.Equal(t, byte(0x00), c[3])
	require.Equal(t, byte(0x00), c[4])
	require.Equal(t, byte(0x10), c[5])
}
