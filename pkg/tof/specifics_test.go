package tof

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func pairs(payload []byte, n int) (addrs, values []uint16) {
	for i := 0; i < n; i++ {
		addrs = append(addrs, binary.LittleEndian.Uint16(payload[i*4:]))
		values = append(values, binary.LittleEndian.Uint16(payload[i*4+2:]))
	}
	return
}

func TestNoiseReduction(t *testing.T) {
	ctrl := &fakeControl{}
	s := NewSpecifics(New(&fakeCapture{}, ctrl))

	require.NoError(t, s.SetNoiseReductionThreshold(0x0123))
	require.Equal(t, uint16(0x0123), s.NoiseReductionThreshold())
	require.False(t, s.NoiseReductionEnabled())

	require.Len(t, ctrl.writes, 1)
	addrs, values := pairs(ctrl.writes[0].payload, 5)
	require.Equal(t, []uint16{0x4001, 0x7c22, 0xc34a, 0x4001, 0x7c22}, addrs)
	require.Equal(t, []uint16{0x0006, 0x0004, 0x0123, 0x0007, 0x0004}, values)

	require.NoError(t, s.EnableNoiseReduction(true))
	require.True(t, s.NoiseReductionEnabled())

	_, values = pairs(ctrl.writes[1].payload, 5)
	require.Equal(t, uint16(0x8123), values[2], "enable bit set on top of threshold")
}

func TestIrGammaCorrection(t *testing.T) {
	ctrl := &fakeControl{}
	s := NewSpecifics(New(&fakeCapture{}, ctrl))

	require.Equal(t, float32(1), s.IrGammaCorrection())

	require.NoError(t, s.SetIrGammaCorrection(1))
	require.Len(t, ctrl.writes, 2, "curve goes out in two halves")

	addrs, values := pairs(ctrl.writes[0].payload, 8)
	require.Equal(t, []uint16{0x4001, 0x7c22, 0xc372, 0xc373, 0xc374, 0xc375, 0xc376, 0xc377}, addrs)
	require.Equal(t, []uint16{0x0006, 0x0004, 0x7888, 0xa997, 0x000a, 64, 128, 192}, values)

	addrs, values = pairs(ctrl.writes[1].payload, 8)
	require.Equal(t, []uint16{0xc378, 0xc379, 0xc37a, 0xc37b, 0xc37c, 0xc37d, 0x4001, 0x7c22}, addrs)
	require.Equal(t, []uint16{224, 256, 384, 512, 768, 1024, 0x0007, 0x0004}, values)
}
