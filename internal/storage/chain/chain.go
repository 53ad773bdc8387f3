// Package chain implements the collision chain used as baseline storage of a bucket, a singly linked list of
// records where new records are prepended to the head.
package chain

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/model"
	"unsafe"
)

// NodeSize - Number of bytes requested from the allocator for each list node
var NodeSize = int64(unsafe.Sizeof(node{}))

type node struct {
	record model.Record
	next   *node
}

// Chain - Singly linked collision chain, the chain owns its nodes but never the values they reference
type Chain struct {
	head      *node
	length    int
	allocator alloc.Allocator
}

// New - Returns a pointer to a new empty Chain
//   - allocator is the allocation capability nodes are requested from
func New(allocator alloc.Allocator) *Chain {
	return &Chain{allocator: allocator}
}

// Len - Returns number of records in the chain
func (C *Chain) Len() int {
	return C.length
}

// Prepend - Adds a new record at the head of the chain without looking for an existing record with same key.
// It returns an error of type hmerrors.AllocationFailure if no node could be allocated, the chain is then unchanged.
func (C *Chain) Prepend(key int64, value any) (err error) {
	err = C.allocator.Alloc(NodeSize)
	if err != nil {
		err = fmt.Errorf("error while allocating list node for key %d: %w", key, err)
		return
	}

	C.head = &node{record: model.Record{Key: key, Value: value}, next: C.head}
	C.length++

	return
}

// Set - Updates the value of the first record with matching key, or prepends a new record if there is none.
// It returns:
//   - added is true if a new node was prepended, false if an existing record was updated
//   - err is of type hmerrors.AllocationFailure if a new node was needed but could not be allocated
func (C *Chain) Set(key int64, value any) (added bool, err error) {
	for n := C.head; n != nil; n = n.next {
		if n.record.Key == key {
			n.record.Value = value
			return
		}
	}

	err = C.Prepend(key, value)
	if err != nil {
		return
	}
	added = true

	return
}

// Get - Returns the value of the first record (counted from the head) with matching key.
// If no record matches an error of type hmerrors.NoRecordFound is returned.
func (C *Chain) Get(key int64) (value any, err error) {
	for n := C.head; n != nil; n = n.next {
		if n.record.Key == key {
			value = n.record.Value
			return
		}
	}

	err = hmerrors.NoRecordFound{}
	return
}

// Delete - Unlinks and frees the first record with matching key, any further records with the same key remain.
// It returns the value of the removed record, or an error of type hmerrors.NoRecordFound.
func (C *Chain) Delete(key int64) (value any, err error) {
	var prev *node
	for n := C.head; n != nil; n = n.next {
		if n.record.Key == key {
			if prev == nil {
				C.head = n.next
			} else {
				prev.next = n.next
			}
			n.next = nil
			C.length--
			C.allocator.Free(NodeSize)
			value = n.record.Value
			return
		}
		prev = n
	}

	err = hmerrors.NoRecordFound{}
	return
}

// Walk - Calls fn for every record from the head, stops early if fn returns false
func (C *Chain) Walk(fn func(record model.Record) bool) {
	for n := C.head; n != nil; n = n.next {
		if !fn(n.record) {
			return
		}
	}
}

// Cursor - Returns a function that hands out the records one by one from the head.
// The second return value is false when the chain is exhausted. The chain must not be modified while in use.
func (C *Chain) Cursor() func() (model.Record, bool) {
	n := C.head
	return func() (record model.Record, ok bool) {
		if n == nil {
			return
		}
		record, ok = n.record, true
		n = n.next
		return
	}
}

// Destroy - Frees every node in the chain, the chain is empty afterwards
func (C *Chain) Destroy() {
	n := C.head
	for n != nil {
		next := n.next
		n.next = nil
		C.allocator.Free(NodeSize)
		n = next
	}
	C.head = nil
	C.length = 0
}
