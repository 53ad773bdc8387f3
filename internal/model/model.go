package model

import (
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/gostonefire/rbhashmap/hashfunc"
)

// BucketType - Tag telling which representation a bucket currently holds
type BucketType uint8

// ListBucket - Bucket stores its records in a singly linked collision chain
const ListBucket BucketType = 0

// TreeBucket - Bucket has been promoted and stores its records in a red-black tree
const TreeBucket BucketType = 1

// String - Returns the name of the bucket type
func (B BucketType) String() string {
	switch B {
	case ListBucket:
		return "list"
	case TreeBucket:
		return "tree"
	default:
		return "unknown"
	}
}

// Record - Represents one key/value pair, the value is only referenced and never copied or freed
type Record struct {
	Key   int64
	Value any
}

// StorageParameters - Represents parameters given to or derived by a hash map at creation time
type StorageParameters struct {
	TableSize          int64
	PromotionThreshold int
	InternalAlgorithm  bool
}

// SCConf - Configuration for the separate chaining bucket storage, zero values are not replaced by defaults
// at this level, the caller is expected to have resolved them.
//   - TableSize is the number of buckets requested
//   - PromotionThreshold is the chain length above which a list bucket becomes a tree bucket
//   - HashAlgorithm is an optional custom bucket selection algorithm, nil gives the internal one
//   - Allocator is where every node and the bucket array are accounted
//   - Reporter receives diagnostics such as promotions and failed promotions
type SCConf struct {
	TableSize          int64
	PromotionThreshold int
	HashAlgorithm      hashfunc.HashAlgorithm
	Allocator          alloc.Allocator
	Reporter           diag.Reporter
}
