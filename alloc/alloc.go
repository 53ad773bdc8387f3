// Package alloc holds the allocation capability consumed by the hash map. Every list node, tree
// node, tree sentinel, bucket array and map record is requested from an Allocator before it is
// created and returned to it when it is torn down, so an allocator both decides whether memory may
// be used and keeps the accounts.
package alloc

//go:generate mockgen -destination=mock_alloc/mock_allocator.go github.com/gostonefire/rbhashmap/alloc Allocator

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/hmerrors"
)

// Allocator - Interface for any allocation capability handed to the hash map
type Allocator interface {
	// Alloc - Requests size bytes for one fixed size record.
	// It returns an error of type hmerrors.AllocationFailure if the request is refused.
	Alloc(size int64) error

	// Free - Returns size bytes for one record previously granted by Alloc.
	Free(size int64)
}

// CountingAllocator - Default allocator, it never refuses a request but keeps count of
// allocations, frees and live bytes.
type CountingAllocator struct {
	allocs    int64
	frees     int64
	liveBytes int64
}

// NewCountingAllocator - Returns a pointer to a new CountingAllocator
func NewCountingAllocator() *CountingAllocator {
	return &CountingAllocator{}
}

// Alloc - Grants the request and counts it
func (C *CountingAllocator) Alloc(size int64) error {
	C.allocs++
	C.liveBytes += size
	return nil
}

// Free - Counts a returned record
func (C *CountingAllocator) Free(size int64) {
	C.frees++
	C.liveBytes -= size
}

// Allocs - Returns number of granted allocations
func (C *CountingAllocator) Allocs() int64 {
	return C.allocs
}

// Frees - Returns number of frees
func (C *CountingAllocator) Frees() int64 {
	return C.frees
}

// Live - Returns number of records currently allocated
func (C *CountingAllocator) Live() int64 {
	return C.allocs - C.frees
}

// LiveBytes - Returns number of bytes currently allocated
func (C *CountingAllocator) LiveBytes() int64 {
	return C.liveBytes
}

// LimitedAllocator - Allocator that refuses any request that would make live bytes exceed a limit.
// Useful to put a hard memory budget on a map and to exercise allocation failure paths.
type LimitedAllocator struct {
	CountingAllocator
	limit   int64
	refused int64
}

// NewLimitedAllocator - Returns a pointer to a new LimitedAllocator
//   - limit is the max number of live bytes, a value less than or equal to zero refuses everything
func NewLimitedAllocator(limit int64) *LimitedAllocator {
	return &LimitedAllocator{limit: limit}
}

// Alloc - Grants the request if it fits within the limit
func (L *LimitedAllocator) Alloc(size int64) (err error) {
	if L.liveBytes+size > L.limit {
		L.refused++
		err = hmerrors.AllocationFailure{Msg: fmt.Sprintf("allocation of %d bytes exceeds limit of %d bytes (%d live)", size, L.limit, L.liveBytes)}
		return
	}

	return L.CountingAllocator.Alloc(size)
}

// SetLimit - Changes the limit, already live allocations are not affected
func (L *LimitedAllocator) SetLimit(limit int64) {
	L.limit = limit
}

// Refused - Returns number of refused requests
func (L *LimitedAllocator) Refused() int64 {
	return L.refused
}
