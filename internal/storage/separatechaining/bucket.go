package separatechaining

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/model"
	"github.com/gostonefire/rbhashmap/internal/storage/chain"
	"github.com/gostonefire/rbhashmap/internal/storage/rbtree"
	"unsafe"
)

// bucketSize - Number of bytes accounted per bucket slot in the bucket array
var bucketSize = int64(unsafe.Sizeof(bucket{}))

// bucket - Tagged union holding either a collision chain or a red-black tree, exactly one of list and tree is
// set and bucketType tells which. A bucket goes from list to tree once and never back.
type bucket struct {
	bucketType model.BucketType
	list       *chain.Chain
	tree       *rbtree.Tree
}

// newBucket - Returns an empty list bucket
func newBucket(allocator alloc.Allocator) bucket {
	return bucket{bucketType: model.ListBucket, list: chain.New(allocator)}
}

// set - Overwrites the value of an existing record with same key or adds a new record.
// It returns:
//   - added is true if a new record was added
//   - err is of type hmerrors.AllocationFailure if a new node was needed but could not be allocated
func (B *bucket) set(key int64, value any) (added bool, err error) {
	switch B.bucketType {
	case model.ListBucket:
		added, err = B.list.Set(key, value)
	case model.TreeBucket:
		var replaced bool
		replaced, err = B.tree.Put(key, value)
		added = err == nil && !replaced
	default:
		err = hmerrors.UninitializedState{Msg: fmt.Sprintf("bucket has unknown type %d", B.bucketType)}
	}

	return
}

// get - Returns the value of the record with matching key or an error of type hmerrors.NoRecordFound
func (B *bucket) get(key int64) (value any, err error) {
	switch B.bucketType {
	case model.ListBucket:
		return B.list.Get(key)
	case model.TreeBucket:
		return B.tree.Find(key)
	}

	err = hmerrors.UninitializedState{Msg: fmt.Sprintf("bucket has unknown type %d", B.bucketType)}
	return
}

// delete - Removes the record with matching key and returns its value, or an error of type hmerrors.NoRecordFound
func (B *bucket) delete(key int64) (value any, err error) {
	switch B.bucketType {
	case model.ListBucket:
		return B.list.Delete(key)
	case model.TreeBucket:
		return B.tree.Delete(key)
	}

	err = hmerrors.UninitializedState{Msg: fmt.Sprintf("bucket has unknown type %d", B.bucketType)}
	return
}

// len - Returns number of records in the bucket
func (B *bucket) len() int {
	if B.bucketType == model.TreeBucket {
		return B.tree.Len()
	}
	return B.list.Len()
}

// cursor - Returns a function handing out the records of the bucket, chain order for lists and key order for trees
func (B *bucket) cursor() func() (model.Record, bool) {
	if B.bucketType == model.TreeBucket {
		return B.tree.Cursor()
	}
	return B.list.Cursor()
}

// mustPromote - Tells whether a list bucket has grown past threshold
func (B *bucket) mustPromote(threshold int) bool {
	return B.bucketType == model.ListBucket && B.list.Len() > threshold
}

// promote - Converts a list bucket into a tree bucket. Every record is inserted into a new tree in chain order,
// after which the chain nodes are freed and the tag switched. If any allocation fails the partial tree is
// destroyed and the bucket is left as the list it was.
func (B *bucket) promote(allocator alloc.Allocator) (err error) {
	if B.bucketType != model.ListBucket {
		return
	}

	tree, err := rbtree.New(allocator)
	if err != nil {
		return
	}

	B.list.Walk(func(record model.Record) bool {
		err = tree.Insert(record.Key, record.Value)
		return err == nil
	})
	if err != nil {
		tree.Destroy()
		err = fmt.Errorf("error while promoting list bucket to tree: %w", err)
		return
	}

	B.list.Destroy()
	B.list = nil
	B.tree = tree
	B.bucketType = model.TreeBucket

	return
}

// destroy - Frees every node of the bucket including a tree sentinel
func (B *bucket) destroy() {
	switch B.bucketType {
	case model.ListBucket:
		if B.list != nil {
			B.list.Destroy()
		}
	case model.TreeBucket:
		B.tree.Destroy()
	}
}

// validate - Checks the red-black properties of a tree bucket, list buckets are always valid
func (B *bucket) validate() error {
	if B.bucketType == model.TreeBucket {
		return B.tree.Validate()
	}
	return nil
}
