package hash

// DivisionHashAlgorithm - Plain division method, bucket = key mod tableSize (always non-negative).
// Keys that are equal modulo the table size end up in the same bucket, which makes the algorithm handy
// when a predictable bucket layout is wanted.
type DivisionHashAlgorithm struct {
	tableSize int64
}

// NewDivisionHashAlgorithm - Returns a pointer to a new DivisionHashAlgorithm instance
func NewDivisionHashAlgorithm(tableSize int64) *DivisionHashAlgorithm {
	ha := &DivisionHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, values less than 1 are treated as 1
func (D *DivisionHashAlgorithm) SetTableSize(tableSize int64) {
	if tableSize < 1 {
		tableSize = 1
	}
	D.tableSize = tableSize
}

// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
func (D *DivisionHashAlgorithm) HashFunc1(key int64) int64 {
	h := key % D.tableSize
	if h < 0 {
		h += D.tableSize
	}

	return h
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (D *DivisionHashAlgorithm) GetTableSize() int64 {
	return D.tableSize
}
