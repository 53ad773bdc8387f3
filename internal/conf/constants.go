package conf

// DefaultTableSize - Number of buckets used when a hash map is requested with a table size of zero or less
const DefaultTableSize int64 = 16

// DefaultPromotionThreshold - Chain length above which a list bucket is promoted to a red-black tree
const DefaultPromotionThreshold int = 8

// MaxTableSize - Largest number of buckets a hash map can be created with
const MaxTableSize int64 = 1 << 32

// GoldenRatioNumerator and GoldenRatioDenominator - The multiplicative hash constant 0.6180339887 (fractional part of
// the golden ratio reciprocal) as an exact fraction
const (
	GoldenRatioNumerator   uint64 = 6180339887
	GoldenRatioDenominator uint64 = 10000000000
)
