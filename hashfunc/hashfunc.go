package hashfunc

// HashAlgorithm - Interface that permits an implementation using the HashMap to supply a custom bucket
// selection algorithm suited for its particular distribution of keys.
type HashAlgorithm interface {
	// SetTableSize - Sets the table size for the hash algorithm.
	// It is called when creating a new hash map, hence if a custom hash algorithm is supplied that already
	// has a table size, it will be overwritten by the number of buckets requested for the hash map.
	//   - tableSize is the number of buckets the hash map will address
	SetTableSize(tableSize int64)

	// HashFunc1 - Given key it generates an index (bucket) between 0 and table size - 1
	// Any number returned outside the table size (0 -> table size - 1) will result in an error down stream.
	HashFunc1(key int64) int64

	// GetTableSize - Returns the table size the implemented hash function is supporting.
	// The hash map allocates exactly this number of buckets, so if an implementation rounds the requested
	// table size (to a power of two, a prime etc.) this function must return the rounded size.
	GetTableSize() int64
}
