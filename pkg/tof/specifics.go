package tof

import (
	"math"
)

// Specifics drives the 96tof1 tuning knobs that live behind AFE register
// writes: depth noise reduction and IR gamma correction.
type Specifics struct {
	dev *Device

	noiseReduction bool
	threshold      uint16
	gamma          float32
}

func NewSpecifics(dev *Device) *Specifics {
	return &Specifics{dev: dev, gamma: 1}
}

// EnableNoiseReduction switches depth noise reduction keeping the current
// threshold.
func (s *Specifics) EnableNoiseReduction(on bool) error {
	if err := s.writeThreshold(s.threshold, on); err != nil {
		return err
	}
	s.noiseReduction = on
	return nil
}

func (s *Specifics) NoiseReductionEnabled() bool {
	return s.noiseReduction
}

// SetNoiseReductionThreshold sets the threshold keeping the current enable
// state. The threshold occupies the low 15 bits of the control register.
func (s *Specifics) SetNoiseReductionThreshold(threshold uint16) error {
	if err := s.writeThreshold(threshold, s.noiseReduction); err != nil {
		return err
	}
	s.threshold = threshold
	return nil
}

func (s *Specifics) NoiseReductionThreshold() uint16 {
	return s.threshold
}

func (s *Specifics) writeThreshold(threshold uint16, on bool) error {
	value := threshold
	if on {
		value |= 0x8000
	}

	// unlock, select page, write 0xc34a, lock, deselect
	addrs := []uint16{0x4001, 0x7c22, 0xc34a, 0x4001, 0x7c22}
	values := []uint16{0x0006, 0x0004, value, 0x0007, 0x0004}

	return s.dev.WriteAfeRegisters(addrs, values)
}

// SetIrGammaCorrection uploads a nine-point gamma curve for the IR channel.
// The curve registers only accept eight writes per sequence, so the upload
// goes out in two halves.
func (s *Specifics) SetIrGammaCorrection(gamma float32) error {
	x := [9]float64{256, 512, 768, 896, 1024, 1536, 2048, 3072, 4096}
	var y [9]uint16
	for i := range x {
		y[i] = uint16(math.Pow(x[i]/4096, float64(gamma)) * 1024)
	}

	addrs := []uint16{
		0x4001, 0x7c22, 0xc372, 0xc373, 0xc374, 0xc375,
		0xc376, 0xc377, 0xc378, 0xc379, 0xc37a, 0xc37b,
		0xc37c, 0xc37d, 0x4001, 0x7c22,
	}
	values := []uint16{
		0x0006, 0x0004, 0x7888, 0xa997,
		0x000a, y[0], y[1], y[2],
		y[3], y[4], y[5], y[6],
		y[7], y[8], 0x0007, 0x0004,
	}

	if err := s.dev.WriteAfeRegisters(addrs[:8], values[:8]); err != nil {
		return err
	}
	if err := s.dev.WriteAfeRegisters(addrs[8:], values[8:]); err != nil {
		return err
	}

	s.gamma = gamma
	return nil
}

func (s *Specifics) IrGammaCorrection() float32 {
	return s.gamma
}
