package utils

// IsPowerOf2 - Returns true if n is a positive exact power of two
func IsPowerOf2(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// RoundUp2 - Returns the nearest exponent of 2 that is equal to or higher than a
func RoundUp2(a int64) int64 {
	if a <= 1 {
		return 1
	}
	r := int64(1)
	for r < a {
		r <<= 1
	}

	return r
}
