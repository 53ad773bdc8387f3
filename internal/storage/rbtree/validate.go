package rbtree

import "fmt"

// Validate - Checks every red-black property of the tree, the parent relations, the key order and the count.
// It returns a descriptive error for the first violation found.
func (T *Tree) Validate() (err error) {
	if err = T.check(); err != nil {
		return
	}

	s := T.n(sentinel)
	if s.color != Black {
		return fmt.Errorf("sentinel is %s", s.color)
	}
	if s.left != sentinel || s.right != sentinel {
		return fmt.Errorf("sentinel has children (%d, %d)", s.left, s.right)
	}
	if T.root == sentinel {
		if T.count != 0 {
			return fmt.Errorf("empty tree reports %d records", T.count)
		}
		return
	}
	if T.n(T.root).color != Black {
		return fmt.Errorf("root (key %d) is red", T.n(T.root).key)
	}
	if T.n(T.root).parent != sentinel {
		return fmt.Errorf("root (key %d) has parent %d", T.n(T.root).key, T.n(T.root).parent)
	}

	var count int
	if _, err = T.validate(T.root, &count); err != nil {
		return
	}
	if count != T.count {
		return fmt.Errorf("tree holds %d nodes but reports %d records", count, T.count)
	}

	var prev int64
	first := true
	for x := T.minimum(T.root); x != sentinel; x = T.successor(x) {
		k := T.n(x).key
		if !first && k < prev {
			return fmt.Errorf("key %d follows key %d in order", k, prev)
		}
		prev, first = k, false
	}

	return
}

// validate - Returns the black-height of the subtree rooted at x
func (T *Tree) validate(x uint32, count *int) (blackHeight int, err error) {
	if x == sentinel {
		return 1, nil
	}
	*count++

	nd := T.n(x)
	for _, c := range []uint32{nd.left, nd.right} {
		if c == sentinel {
			continue
		}
		if T.n(c).parent != x {
			return 0, fmt.Errorf("node (key %d) does not point back to parent (key %d)", T.n(c).key, nd.key)
		}
		if nd.color == Red && T.n(c).color == Red {
			return 0, fmt.Errorf("red node (key %d) has red child (key %d)", nd.key, T.n(c).key)
		}
	}
	if nd.left != sentinel && T.n(nd.left).key > nd.key {
		return 0, fmt.Errorf("left child (key %d) greater than node (key %d)", T.n(nd.left).key, nd.key)
	}
	if nd.right != sentinel && T.n(nd.right).key < nd.key {
		return 0, fmt.Errorf("right child (key %d) less than node (key %d)", T.n(nd.right).key, nd.key)
	}

	lh, err := T.validate(nd.left, count)
	if err != nil {
		return
	}
	rh, err := T.validate(nd.right, count)
	if err != nil {
		return
	}
	if lh != rh {
		return 0, fmt.Errorf("node (key %d) has black-heights %d and %d", nd.key, lh, rh)
	}

	blackHeight = lh
	if nd.color == Black {
		blackHeight++
	}

	return
}
