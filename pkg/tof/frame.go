package tof

// FrameType is a named capture configuration of the sensor.
type FrameType struct {
	Kind      string
	Width     uint32
	Height    uint32
	CalGain   float32
	CalOffset float32
}

// the raw mode is the only one with this width, and it unpacks differently
const rawFrameWidth = 668

// FrameTypes returns the capture configurations the sensor supports. Other
// combinations are rejected by the hardware, not validated here.
func FrameTypes() []FrameType {
	return []FrameType{
		{Kind: "depth_ir", Width: 640, Height: 960, CalGain: 1},
		{Kind: "raw", Width: 668, Height: 750, CalGain: 1},
	}
}

// FrameTypeByKind resolves a frame type name like "depth_ir" or "raw".
func FrameTypeByKind(kind string) (FrameType, bool) {
	for _, ft := range FrameTypes() {
		if ft.Kind == kind {
			return ft, true
		}
	}
	return FrameType{}, false
}

// Samples returns the number of pixel values one decoded frame holds.
func (ft FrameType) Samples() int {
	return int(ft.Width) * int(ft.Height)
}
