package ioctl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIOR(t *testing.T) {
	// #define VIDIOC_QUERYCAP _IOR('V', 0, struct v4l2_capability)
	c := IOR('V', 0, 104)
	require.Equal(t, uintptr(0x80685600), c)
}

func TestIORW(t *testing.T) {
	// #define VIDIOC_S_EXT_CTRLS _IOWR('V', 72, struct v4l2_ext_controls)
	c := IORW('V', 72, 32)
	require.Equal(t, uintptr(0xc0205648), c)

	// #define VIDIOC_QBUF _IOWR('V', 15, struct v4l2_buffer), 64-bit layout
	c = IORW('V', 15, 88)
	require.Equal(t, uintptr(0xc058560f), c)
}

func TestStr(t *testing.T) {
	require.Equal(t, "Qualcomm Camera Subsystem", Str([]byte("Qualcomm Camera Subsystem\x00\x00\x00")))
	require.Equal(t, "abc", Str([]byte("abc")))
}
