package tof

// The sensor emits 12-bit samples packed two per three bytes: the first two
// bytes carry the high eight bits of each sample, the third byte carries
// both low nibbles (first sample in the low nibble).

// unpackRaw unpacks a raw-mode frame sequentially. The sensor repeats four
// samples after every 336 packed triplets (672 samples) in this mode, so
// the write cursor rewinds by 4 there. Empirically reverse-engineered, keep
// the constants.
func unpackRaw(dst []uint16, src []byte, width, height int) {
	j := 0
	for i := 0; i < width*height*3/2; i += 3 {
		if i != 0 && i%(336*3) == 0 {
			j -= 4
		}

		dst[j] = uint16(src[i])<<4 | uint16(src[i+2])&0x0F
		j++

		dst[j] = uint16(src[i+1])<<4 | uint16(src[i+2])>>4
		j++
	}
}

// unpackDepthIR demultiplexes a depth_ir frame: even input rows land in the
// first half of dst, odd rows in the second half starting at
// height*width/2.
func unpackDepthIR(dst []uint16, src []byte, width, height int) {
	offset := [2]int{0, height * width / 2}
	j := 0
	for i := 0; i < width*height*3/2; i += 3 {
		k := (j / width) % 2

		dst[offset[k]] = uint16(src[i])<<4 | uint16(src[i+2])&0x0F
		offset[k]++

		dst[offset[k]] = uint16(src[i+1])<<4 | uint16(src[i+2])>>4
		offset[k]++

		j += 2
	}
}
