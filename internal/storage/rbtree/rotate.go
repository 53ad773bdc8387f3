package rbtree

// leftRotate - Rotates the right child of x up into the place of x. The root index is re-pointed when x is the
// root. A node without right child is left untouched.
func (T *Tree) leftRotate(x uint32) {
	nx := T.n(x)
	y := nx.right
	if y == sentinel {
		return
	}
	ny := T.n(y)

	nx.right = ny.left
	if ny.left != sentinel {
		T.n(ny.left).parent = x
	}

	ny.parent = nx.parent
	switch {
	case nx.parent == sentinel:
		T.root = y
	case x == T.n(nx.parent).left:
		T.n(nx.parent).left = y
	default:
		T.n(nx.parent).right = y
	}

	ny.left = x
	nx.parent = y
}

// rightRotate - Mirror of leftRotate, the left child of x takes its place
func (T *Tree) rightRotate(x uint32) {
	nx := T.n(x)
	y := nx.left
	if y == sentinel {
		return
	}
	ny := T.n(y)

	nx.left = ny.right
	if ny.right != sentinel {
		T.n(ny.right).parent = x
	}

	ny.parent = nx.parent
	switch {
	case nx.parent == sentinel:
		T.root = y
	case x == T.n(nx.parent).right:
		T.n(nx.parent).right = y
	default:
		T.n(nx.parent).left = y
	}

	ny.right = x
	nx.parent = y
}
