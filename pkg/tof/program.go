package tof

import (
	"encoding/binary"
	"fmt"
)

// Program uploads a firmware blob to the AFE. Blobs up to PacketSize go out
// as a single control write. Larger blobs are split into PacketSize chunks
// with the last chunk zero-padded, and a 100us pause between chunks gives
// the chip time to absorb each one. The pause is required by the hardware;
// without it uploads corrupt silently.
func (d *Device) Program(firmware []byte) error {
	if len(firmware) <= PacketSize {
		if err := d.ctrl.Set(cidSetChipConfig, firmware); err != nil {
			return fmt.Errorf("tof: program afe: %w", err)
		}
		return nil
	}

	for sent := 0; sent < len(firmware); sent += PacketSize {
		chunk := firmware[sent:]
		if len(chunk) > PacketSize {
			chunk = chunk[:PacketSize]
		} else if len(chunk) < PacketSize {
			padded := make([]byte, PacketSize)
			copy(padded, chunk)
			chunk = padded
		}

		if sent > 0 {
			d.pace()
		}

		if err := d.ctrl.Set(cidSetChipConfig, chunk); err != nil {
			return fmt.Errorf("tof: program afe: %w", err)
		}
	}
	return nil
}

// WriteAfeRegisters writes address/value pairs to the AFE register space.
// Pairs are packed as interleaved 16-bit words into PacketSize chunks, the
// last chunk zero-padded. Unlike Program there is no pause between chunks.
func (d *Device) WriteAfeRegisters(addrs, values []uint16) error {
	if len(addrs) != len(values) {
		return fmt.Errorf("tof: register count mismatch: %d addresses, %d values", len(addrs), len(values))
	}

	const pairSize = 2 * 2
	const pairsPerChunk = PacketSize / pairSize

	for sent := 0; sent < len(addrs); sent += pairsPerChunk {
		n := len(addrs) - sent
		if n > pairsPerChunk {
			n = pairsPerChunk
		}

		chunk := make([]byte, PacketSize)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(chunk[i*pairSize:], addrs[sent+i])
			binary.LittleEndian.PutUint16(chunk[i*pairSize+2:], values[sent+i])
		}

		if err := d.ctrl.Set(cidSetChipConfig, chunk); err != nil {
			return fmt.Errorf("tof: write afe registers: %w", err)
		}
	}
	return nil
}

// ReadAfeRegisters reads one AFE register per address, in input order. Each
// register is a separate control transfer. The first failure aborts the
// whole call; no partial results are returned.
func (d *Device) ReadAfeRegisters(addrs []uint16) ([]uint16, error) {
	values := make([]uint16, len(addrs))
	word := make([]byte, 2)

	for i, addr := range addrs {
		binary.LittleEndian.PutUint16(word, addr)
		if err := d.ctrl.Get(cidReadRegister, word); err != nil {
			return nil, fmt.Errorf("tof: read afe register %#04x: %w", addr, err)
		}
		values[i] = binary.LittleEndian.Uint16(word)
	}
	return values, nil
}
