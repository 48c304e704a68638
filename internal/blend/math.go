package blend

// div255 divides x by 255 using the shift approximation (x + 255) >> 8.
// For products of two bytes the result is within [0, 255] and exact at 0
// and 255.
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
