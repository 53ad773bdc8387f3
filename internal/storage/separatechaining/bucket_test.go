package separatechaining

import (
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/model"
	"github.com/gostonefire/rbhashmap/internal/storage/chain"
	"github.com/gostonefire/rbhashmap/internal/storage/rbtree"
	"github.com/stretchr/testify/assert"
	"testing"
)

func bucketKeys(b *bucket) (keys []int64) {
	next := b.cursor()
	for r, ok := next(); ok; r, ok = next() {
		keys = append(keys, r.Key)
	}
	return
}

func TestBucket_set(t *testing.T) {
	t.Run("overwrites existing key in list bucket", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		added, err := b.set(1, "one")
		assert.NoError(t, err, "sets")
		assert.True(t, added, "added")

		// Execute
		added, err = b.set(1, "uno")

		// Check
		assert.NoError(t, err, "sets")
		assert.False(t, added, "overwritten, not added")
		v, err := b.get(1)
		assert.NoError(t, err, "gets")
		assert.Equal(t, "uno", v, "latest value")
		assert.Equal(t, 1, b.len(), "one record")
		assert.Equal(t, int64(1), a.Live(), "one node")
	})

	t.Run("overwrites existing key in tree bucket", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		for k := int64(0); k < 4; k++ {
			_, _ = b.set(k, k)
		}
		assert.NoError(t, b.promote(a), "promotes")

		// Execute
		added, err := b.set(2, "two")

		// Check
		assert.NoError(t, err, "sets")
		assert.False(t, added, "overwritten, not added")
		v, _ := b.get(2)
		assert.Equal(t, "two", v, "latest value")
		added, err = b.set(9, "nine")
		assert.NoError(t, err, "sets")
		assert.True(t, added, "new key added to tree")
		assert.Equal(t, 5, b.len(), "five records")
	})
}

func TestBucket_promote(t *testing.T) {
	t.Run("moves every record into a tree and frees the chain", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		for _, k := range []int64{12, 8, 4, 0} {
			_, _ = b.set(k, k*2)
		}

		// Execute
		err := b.promote(a)

		// Check
		assert.NoError(t, err, "promotes")
		assert.Equal(t, model.TreeBucket, b.bucketType, "now a tree")
		assert.Nil(t, b.list, "chain dropped")
		assert.Equal(t, []int64{0, 4, 8, 12}, bucketKeys(&b), "key order")
		assert.Equal(t, int64(5), a.Live(), "sentinel and four tree nodes")
		assert.NoError(t, b.validate(), "valid tree")
		for _, k := range []int64{12, 8, 4, 0} {
			v, err := b.get(k)
			assert.NoError(t, err, "found")
			assert.Equal(t, k*2, v, "value carried over")
		}
	})

	t.Run("rolls back on allocation failure", func(t *testing.T) {
		// Prepare
		a := alloc.NewLimitedAllocator(1 << 20)
		b := newBucket(a)
		for _, k := range []int64{1, 2, 3, 4, 5} {
			_, _ = b.set(k, k)
		}
		before := bucketKeys(&b)
		live := a.LiveBytes()
		a.SetLimit(live + rbtree.NodeSize*3)

		// Execute
		err := b.promote(a)

		// Check
		assert.ErrorIs(t, err, hmerrors.AllocationFailure{}, "allocation failure")
		assert.Equal(t, model.ListBucket, b.bucketType, "still a list")
		assert.Nil(t, b.tree, "no tree kept")
		assert.Equal(t, before, bucketKeys(&b), "chain untouched")
		assert.Equal(t, live, a.LiveBytes(), "partial tree released")
		assert.Equal(t, int64(5)*chain.NodeSize, a.LiveBytes(), "only chain nodes live")
	})

	t.Run("promoting a tree bucket is a no-op", func(t *testing.T) {
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		_, _ = b.set(1, 1)
		assert.NoError(t, b.promote(a), "promotes")
		allocs := a.Allocs()
		assert.NoError(t, b.promote(a), "second promote")
		assert.Equal(t, allocs, a.Allocs(), "nothing allocated")
	})
}

func TestBucket_mustPromote(t *testing.T) {
	a := alloc.NewCountingAllocator()
	b := newBucket(a)
	for k := int64(0); k < 3; k++ {
		_, _ = b.set(k, nil)
	}
	assert.False(t, b.mustPromote(3), "at threshold")
	_, _ = b.set(3, nil)
	assert.True(t, b.mustPromote(3), "above threshold")
	_ = b.promote(a)
	assert.False(t, b.mustPromote(3), "tree buckets are never promoted again")
}

func TestBucket_delete(t *testing.T) {
	t.Run("emptied tree bucket stays a tree", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		for k := int64(0); k < 3; k++ {
			_, _ = b.set(k, k)
		}
		_ = b.promote(a)

		// Execute
		for k := int64(0); k < 3; k++ {
			v, err := b.delete(k)
			assert.NoError(t, err, "deletes")
			assert.Equal(t, k, v, "returns value")
		}

		// Check
		assert.Equal(t, model.TreeBucket, b.bucketType, "still a tree")
		assert.Equal(t, 0, b.len(), "empty")
		_, err := b.delete(0)
		assert.ErrorIs(t, err, hmerrors.NoRecordFound{}, "absent")
		assert.Equal(t, int64(1), a.Live(), "sentinel only")
	})
}

func TestBucket_destroy(t *testing.T) {
	for _, promote := range []bool{false, true} {
		a := alloc.NewCountingAllocator()
		b := newBucket(a)
		for k := int64(0); k < 10; k++ {
			_, _ = b.set(k, k)
		}
		if promote {
			_ = b.promote(a)
		}

		b.destroy()

		assert.Equalf(t, int64(0), a.Live(), "nothing live (promoted: %v)", promote)
		assert.Equalf(t, int64(0), a.LiveBytes(), "no live bytes (promoted: %v)", promote)
	}
}
