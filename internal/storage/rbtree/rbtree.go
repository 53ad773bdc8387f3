// Package rbtree implements the red-black tree a bucket is promoted to once its collision chain grows too long.
//
// Nodes live in an arena (a slice) and refer to each other by index. Index 0 is the sentinel: it is always
// BLACK, stands in for every leaf and for the parent of the root, and is only released when the tree is
// destroyed. Every node slot, the sentinel included, is accounted with the allocator given to New.
package rbtree

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/model"
	"unsafe"
)

// Color - Color of a tree node
type Color bool

const (
	Black Color = false
	Red   Color = true
)

// String - Returns the color name
func (C Color) String() string {
	if C == Red {
		return "red"
	}
	return "black"
}

// sentinel - Arena index of the sentinel node
const sentinel uint32 = 0

type node struct {
	key    int64
	value  any
	color  Color
	left   uint32
	right  uint32
	parent uint32
}

// NodeSize - Number of bytes requested from the allocator for each tree node (and for the sentinel)
var NodeSize = int64(unsafe.Sizeof(node{}))

// Tree - Red-black tree keyed by int64, duplicate keys are allowed by Insert and end up to the right
type Tree struct {
	nodes     []node
	free      []uint32
	root      uint32
	count     int
	allocator alloc.Allocator
}

// New - Returns a pointer to a new empty Tree with its sentinel allocated.
//   - allocator is the allocation capability node slots are requested from
//
// It returns an error of type hmerrors.AllocationFailure if the sentinel could not be allocated.
func New(allocator alloc.Allocator) (tree *Tree, err error) {
	err = allocator.Alloc(NodeSize)
	if err != nil {
		err = fmt.Errorf("error while allocating tree sentinel: %w", err)
		return
	}

	tree = &Tree{
		nodes:     []node{{color: Black, left: sentinel, right: sentinel, parent: sentinel}},
		root:      sentinel,
		allocator: allocator,
	}

	return
}

// Len - Returns number of records in the tree
func (T *Tree) Len() int {
	if T == nil {
		return 0
	}
	return T.count
}

// Find - Returns the value of the record with matching key found by a standard descent.
// If no record matches an error of type hmerrors.NoRecordFound is returned.
func (T *Tree) Find(key int64) (value any, err error) {
	if err = T.check(); err != nil {
		return
	}

	x := T.find(key)
	if x == sentinel {
		err = hmerrors.NoRecordFound{}
		return
	}
	value = T.n(x).value

	return
}

// Min - Returns the record with the lowest key, or an error of type hmerrors.NoRecordFound if the tree is empty
func (T *Tree) Min() (record model.Record, err error) {
	if err = T.check(); err != nil {
		return
	}
	if T.root == sentinel {
		err = hmerrors.NoRecordFound{}
		return
	}
	record = T.record(T.minimum(T.root))

	return
}

// Max - Returns the record with the highest key, or an error of type hmerrors.NoRecordFound if the tree is empty
func (T *Tree) Max() (record model.Record, err error) {
	if err = T.check(); err != nil {
		return
	}
	if T.root == sentinel {
		err = hmerrors.NoRecordFound{}
		return
	}
	record = T.record(T.maximum(T.root))

	return
}

// Walk - Calls fn for every record in key order, stops early if fn returns false
func (T *Tree) Walk(fn func(record model.Record) bool) {
	if T.check() != nil || T.root == sentinel {
		return
	}
	for x := T.minimum(T.root); x != sentinel; x = T.successor(x) {
		if !fn(T.record(x)) {
			return
		}
	}
}

// Cursor - Returns a function that hands out the records one by one in key order.
// The second return value is false when the tree is exhausted. The tree must not be modified while in use.
func (T *Tree) Cursor() func() (model.Record, bool) {
	x := sentinel
	if T.check() == nil && T.root != sentinel {
		x = T.minimum(T.root)
	}

	return func() (record model.Record, ok bool) {
		if x == sentinel {
			return
		}
		record, ok = T.record(x), true
		x = T.successor(x)
		return
	}
}

// Destroy - Frees every node in post-order and then the sentinel. It uses an explicit stack so that the
// depth of the tree never matters. The tree is unusable afterwards, calling Destroy again is a no-op.
func (T *Tree) Destroy() {
	if T.check() != nil {
		return
	}

	if T.root != sentinel {
		// Two stack post-order: pop from pending onto order, children pushed left before right
		pending := []uint32{T.root}
		order := make([]uint32, 0, T.count)
		for len(pending) > 0 {
			x := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			order = append(order, x)
			if l := T.n(x).left; l != sentinel {
				pending = append(pending, l)
			}
			if r := T.n(x).right; r != sentinel {
				pending = append(pending, r)
			}
		}
		for i := len(order) - 1; i >= 0; i-- {
			T.freeNode(order[i])
		}
	}

	T.allocator.Free(NodeSize)
	T.nodes = nil
	T.free = nil
	T.root = sentinel
	T.count = 0
}

// check - Detects a nil tree or a tree without sentinel
func (T *Tree) check() error {
	if T == nil || len(T.nodes) == 0 {
		return hmerrors.UninitializedState{Msg: "red-black tree or its sentinel is not initialized"}
	}
	return nil
}

// n - Returns a pointer to the node at arena index i, only valid until the arena grows
func (T *Tree) n(i uint32) *node {
	return &T.nodes[i]
}

// record - Returns the record held by node x
func (T *Tree) record(x uint32) model.Record {
	nd := T.n(x)
	return model.Record{Key: nd.key, Value: nd.value}
}

// find - Returns the index of the first node with matching key reached by descent, or the sentinel
func (T *Tree) find(key int64) uint32 {
	x := T.root
	for x != sentinel {
		nd := T.n(x)
		switch {
		case key < nd.key:
			x = nd.left
		case key > nd.key:
			x = nd.right
		default:
			return x
		}
	}
	return sentinel
}

// minimum - Descends strictly left from x until the sentinel is reached
func (T *Tree) minimum(x uint32) uint32 {
	for T.n(x).left != sentinel {
		x = T.n(x).left
	}
	return x
}

// maximum - Descends strictly right from x until the sentinel is reached
func (T *Tree) maximum(x uint32) uint32 {
	for T.n(x).right != sentinel {
		x = T.n(x).right
	}
	return x
}

// successor - Returns the in-order successor of x, or the sentinel if x is the last node
func (T *Tree) successor(x uint32) uint32 {
	if r := T.n(x).right; r != sentinel {
		return T.minimum(r)
	}
	y := T.n(x).parent
	for y != sentinel && x == T.n(y).right {
		x = y
		y = T.n(y).parent
	}
	return y
}

// newNode - Allocates a RED node slot holding key and value, reusing freed slots first
func (T *Tree) newNode(key int64, value any) (x uint32, err error) {
	err = T.allocator.Alloc(NodeSize)
	if err != nil {
		err = fmt.Errorf("error while allocating tree node for key %d: %w", key, err)
		return
	}

	nd := node{key: key, value: value, color: Red, left: sentinel, right: sentinel, parent: sentinel}
	if l := len(T.free); l > 0 {
		x = T.free[l-1]
		T.free = T.free[:l-1]
		T.nodes[x] = nd
		return
	}

	x = uint32(len(T.nodes))
	T.nodes = append(T.nodes, nd)

	return
}

// freeNode - Clears the slot (dropping the value reference) and returns it to the free list and the allocator
func (T *Tree) freeNode(x uint32) {
	T.nodes[x] = node{}
	T.free = append(T.free, x)
	T.allocator.Free(NodeSize)
}
