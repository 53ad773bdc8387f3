package rbtree

import "github.com/gostonefire/rbhashmap/hmerrors"

// Delete - Removes the first record with matching key reached by descent and returns its value.
// A node with at most one child is spliced out, otherwise its in-order successor takes its place. If the
// physically removed color was BLACK the tree is rebalanced.
// It returns an error of type hmerrors.NoRecordFound if no record matches, the tree is then unchanged.
func (T *Tree) Delete(key int64) (value any, err error) {
	if err = T.check(); err != nil {
		return
	}

	z := T.find(key)
	if z == sentinel {
		err = hmerrors.NoRecordFound{}
		return
	}
	value = T.n(z).value
	T.remove(z)

	return
}

// remove - Unlinks node z and frees its slot
func (T *Tree) remove(z uint32) {
	var x uint32
	y := z
	removedColor := T.n(y).color

	switch {
	case T.n(z).left == sentinel:
		x = T.n(z).right
		T.transplant(z, x)
	case T.n(z).right == sentinel:
		x = T.n(z).left
		T.transplant(z, x)
	default:
		y = T.minimum(T.n(z).right)
		removedColor = T.n(y).color
		x = T.n(y).right
		if T.n(y).parent == z {
			// x may be the sentinel, its parent is needed by the fixup
			T.n(x).parent = y
		} else {
			T.transplant(y, T.n(y).right)
			T.n(y).right = T.n(z).right
			T.n(T.n(y).right).parent = y
		}
		T.transplant(z, y)
		T.n(y).left = T.n(z).left
		T.n(T.n(y).left).parent = y
		T.n(y).color = T.n(z).color
	}

	if removedColor == Black {
		T.deleteFixup(x)
	}

	T.n(sentinel).parent = sentinel
	T.count--
	T.freeNode(z)
}

// transplant - Replaces the subtree rooted at u with the subtree rooted at v
func (T *Tree) transplant(u, v uint32) {
	up := T.n(u).parent
	switch {
	case up == sentinel:
		T.root = v
	case u == T.n(up).left:
		T.n(up).left = v
	default:
		T.n(up).right = v
	}
	T.n(v).parent = up
}

// deleteFixup - Restores the black-height starting at x, the node that took the removed node's place. It walks
// up recoloring and rotating depending on the sibling color and the colors of the sibling's children, and stops
// when a RED node can absorb the missing BLACK or the root is reached.
func (T *Tree) deleteFixup(x uint32) {
	for x != T.root && T.n(x).color == Black {
		p := T.n(x).parent

		if x == T.n(p).left {
			w := T.n(p).right
			if T.n(w).color == Red {
				T.n(w).color = Black
				T.n(p).color = Red
				T.leftRotate(p)
				w = T.n(p).right
			}
			if T.n(T.n(w).left).color == Black && T.n(T.n(w).right).color == Black {
				T.n(w).color = Red
				x = p
				continue
			}
			if T.n(T.n(w).right).color == Black {
				T.n(T.n(w).left).color = Black
				T.n(w).color = Red
				T.rightRotate(w)
				w = T.n(p).right
			}
			T.n(w).color = T.n(p).color
			T.n(p).color = Black
			T.n(T.n(w).right).color = Black
			T.leftRotate(p)
			x = T.root
		} else {
			w := T.n(p).left
			if T.n(w).color == Red {
				T.n(w).color = Black
				T.n(p).color = Red
				T.rightRotate(p)
				w = T.n(p).left
			}
			if T.n(T.n(w).right).color == Black && T.n(T.n(w).left).color == Black {
				T.n(w).color = Red
				x = p
				continue
			}
			if T.n(T.n(w).left).color == Black {
				T.n(T.n(w).right).color = Black
				T.n(w).color = Red
				T.leftRotate(w)
				w = T.n(p).left
			}
			T.n(w).color = T.n(p).color
			T.n(p).color = Black
			T.n(T.n(w).left).color = Black
			T.rightRotate(p)
			x = T.root
		}
	}

	T.n(x).color = Black
}
