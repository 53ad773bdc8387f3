package hash

import (
	"github.com/gostonefire/rbhashmap/internal/conf"
	"github.com/gostonefire/rbhashmap/internal/utils"
	"math/bits"
)

// MultiplicativeHashAlgorithm - The internally used bucket selection algorithm. It multiplies the key with the
// fractional part of the golden ratio reciprocal, scales the fractional part of the product by the table size and
// truncates. The final reduction uses hash & (tableSize - 1) when the table size is a power of two and
// hash % tableSize otherwise.
type MultiplicativeHashAlgorithm struct {
	tableSize int64
	powerOf2  bool
}

// NewMultiplicativeHashAlgorithm - Returns a pointer to a new MultiplicativeHashAlgorithm instance
func NewMultiplicativeHashAlgorithm(tableSize int64) *MultiplicativeHashAlgorithm {
	ha := &MultiplicativeHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, the size is used as is (no rounding).
//   - tableSize is the number of buckets the hash map will address, values less than 1 are treated as 1
func (M *MultiplicativeHashAlgorithm) SetTableSize(tableSize int64) {
	if tableSize < 1 {
		tableSize = 1
	}
	M.tableSize = tableSize
	M.powerOf2 = utils.IsPowerOf2(tableSize)
}

// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
func (M *MultiplicativeHashAlgorithm) HashFunc1(key int64) int64 {
	h := M.scaled(key)
	if M.powerOf2 {
		return reduceMask(h, M.tableSize)
	}

	return reduceModulo(h, M.tableSize)
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (M *MultiplicativeHashAlgorithm) GetTableSize() int64 {
	return M.tableSize
}

// scaled - Returns the truncated product of table size and the fractional part of key * golden ratio reciprocal.
// The fraction is computed exactly in fixed point as (|key| * numerator) mod denominator over 128 bits, so every
// bit of a 64 bit key contributes. The fractional part is taken with floor so that negative keys also give a
// value in [0, 1).
func (M *MultiplicativeHashAlgorithm) scaled(key int64) int64 {
	magnitude := uint64(key)
	if key < 0 {
		magnitude = -magnitude
	}

	hi, lo := bits.Mul64(magnitude, conf.GoldenRatioNumerator)
	fraction := bits.Rem64(hi, lo, conf.GoldenRatioDenominator)
	if key < 0 && fraction != 0 {
		fraction = conf.GoldenRatioDenominator - fraction
	}

	// tableSize * fraction / denominator, hi stays below the denominator since fraction does
	hi, lo = bits.Mul64(uint64(M.tableSize), fraction)
	h, _ := bits.Div64(hi, lo, conf.GoldenRatioDenominator)

	return int64(h)
}

// reduceMask - Reduction for table sizes that are a power of two
func reduceMask(h, tableSize int64) int64 {
	return h & (tableSize - 1)
}

// reduceModulo - Reduction for any positive table size
func reduceModulo(h, tableSize int64) int64 {
	return h % tableSize
}
