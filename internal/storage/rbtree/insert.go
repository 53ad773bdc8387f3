package rbtree

// Insert - Adds a new record. The insertion parent is found by a standard descent where ties go right, so an
// existing key is not replaced but gets a second node. The tree is rebalanced before returning.
// It returns an error of type hmerrors.AllocationFailure if no node could be allocated, the tree is then unchanged,
// or hmerrors.UninitializedState if the tree has no sentinel.
func (T *Tree) Insert(key int64, value any) (err error) {
	if err = T.check(); err != nil {
		return
	}

	z, err := T.newNode(key, value)
	if err != nil {
		return
	}
	T.attach(z)

	return
}

// Put - Replaces the value of the record with matching key, or inserts a new record if there is none.
// It returns:
//   - replaced is true if an existing record got the new value
//   - err is of type hmerrors.AllocationFailure or hmerrors.UninitializedState, in which case nothing changed
func (T *Tree) Put(key int64, value any) (replaced bool, err error) {
	if err = T.check(); err != nil {
		return
	}

	if x := T.find(key); x != sentinel {
		T.n(x).value = value
		replaced = true
		return
	}

	err = T.Insert(key, value)

	return
}

// attach - Links the detached node z below its insertion parent and restores the red-black properties
func (T *Tree) attach(z uint32) {
	key := T.n(z).key

	y := sentinel
	x := T.root
	for x != sentinel {
		y = x
		if key < T.n(x).key {
			x = T.n(x).left
		} else {
			x = T.n(x).right
		}
	}

	T.n(z).parent = y
	switch {
	case y == sentinel:
		T.root = z
	case key < T.n(y).key:
		T.n(y).left = z
	default:
		T.n(y).right = z
	}
	T.count++

	T.insertFixup(z)
}

// insertFixup - Walks up from the RED node z while its parent is RED. A RED uncle means recoloring and moving
// two levels up, a BLACK uncle means at most two rotations after which the loop ends.
func (T *Tree) insertFixup(z uint32) {
	for T.n(T.n(z).parent).color == Red {
		p := T.n(z).parent
		g := T.n(p).parent

		if p == T.n(g).left {
			u := T.n(g).right
			if T.n(u).color == Red {
				T.n(p).color = Black
				T.n(u).color = Black
				T.n(g).color = Red
				z = g
				continue
			}
			if z == T.n(p).right {
				z = p
				T.leftRotate(z)
				p = T.n(z).parent
			}
			T.n(p).color = Black
			T.n(g).color = Red
			T.rightRotate(g)
		} else {
			u := T.n(g).left
			if T.n(u).color == Red {
				T.n(p).color = Black
				T.n(u).color = Black
				T.n(g).color = Red
				z = g
				continue
			}
			if z == T.n(p).left {
				z = p
				T.rightRotate(z)
				p = T.n(z).parent
			}
			T.n(p).color = Black
			T.n(g).color = Red
			T.leftRotate(g)
		}
	}

	T.n(T.root).color = Black
}
