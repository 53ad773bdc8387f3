package separatechaining

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/hash"
	"github.com/gostonefire/rbhashmap/internal/model"
	"github.com/gostonefire/rbhashmap/internal/storage/chain"
	"github.com/gostonefire/rbhashmap/internal/storage/rbtree"
	"github.com/stretchr/testify/assert"
	"testing"
)

// outOfRangeAlgorithm - Custom hash algorithm returning a bucket number one past the table
type outOfRangeAlgorithm struct {
	tableSize int64
}

func (O *outOfRangeAlgorithm) SetTableSize(tableSize int64) { O.tableSize = tableSize }
func (O *outOfRangeAlgorithm) HashFunc1(int64) int64         { return O.tableSize }
func (O *outOfRangeAlgorithm) GetTableSize() int64           { return O.tableSize }

type report struct {
	severity diag.Severity
	msg      string
}

func newTestSCBuckets(t *testing.T, tableSize int64, threshold int, a alloc.Allocator) (*SCBuckets, *[]report) {
	var reports []report
	scBuckets, err := NewSCBuckets(model.SCConf{
		TableSize:          tableSize,
		PromotionThreshold: threshold,
		HashAlgorithm:      hash.NewDivisionHashAlgorithm(0),
		Allocator:          a,
		Reporter: diag.ReporterFunc(func(severity diag.Severity, msg string) {
			reports = append(reports, report{severity, msg})
		}),
	})
	assert.NoError(t, err, "creates bucket storage")
	return scBuckets, &reports
}

func TestNewSCBuckets(t *testing.T) {
	t.Run("creates storage with internal hash algorithm", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()

		// Execute
		scBuckets, err := NewSCBuckets(model.SCConf{TableSize: 10, PromotionThreshold: 8, Allocator: a, Reporter: diag.NopReporter{}})

		// Check
		assert.NoError(t, err, "create new SCBuckets instance")
		assert.Len(t, scBuckets.buckets, 10, "ten buckets")
		assert.Equal(t, int64(10)*bucketSize, a.LiveBytes(), "bucket array accounted")
		params := scBuckets.GetStorageParameters()
		assert.Equal(t, model.StorageParameters{TableSize: 10, PromotionThreshold: 8, InternalAlgorithm: true}, params, "parameters")
		for i := int64(0); i < 10; i++ {
			bt, _, err := scBuckets.GetBucket(i)
			assert.NoError(t, err, "gets bucket")
			assert.Equal(t, model.ListBucket, bt, "starts as list")
		}
	})

	t.Run("sets table size on custom hash algorithm", func(t *testing.T) {
		// Prepare
		ha := hash.NewDivisionHashAlgorithm(1)

		// Execute
		scBuckets, err := NewSCBuckets(model.SCConf{TableSize: 7, PromotionThreshold: 8, HashAlgorithm: ha, Allocator: alloc.NewCountingAllocator(), Reporter: diag.NopReporter{}})

		// Check
		assert.NoError(t, err, "create new SCBuckets instance")
		assert.Equal(t, int64(7), ha.GetTableSize(), "table size set")
		assert.False(t, scBuckets.GetStorageParameters().InternalAlgorithm, "custom algorithm")
	})

	t.Run("fails when bucket array can not be allocated", func(t *testing.T) {
		// Execute
		scBuckets, err := NewSCBuckets(model.SCConf{TableSize: 4, PromotionThreshold: 8, Allocator: alloc.NewLimitedAllocator(bucketSize * 3), Reporter: diag.NopReporter{}})

		// Check
		assert.ErrorIs(t, err, hmerrors.AllocationFailure{}, "allocation failure")
		assert.Nil(t, scBuckets, "no storage")
	})

	t.Run("refuses table sizes above the maximum", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()

		// Execute
		scBuckets, err := NewSCBuckets(model.SCConf{TableSize: 1 << 62, PromotionThreshold: 8, Allocator: a, Reporter: diag.NopReporter{}})

		// Check
		assert.ErrorIs(t, err, hmerrors.AllocationFailure{}, "allocation failure")
		assert.ErrorContains(t, err, "exceeds maximum", "message")
		assert.Nil(t, scBuckets, "no storage")
		assert.Equal(t, int64(0), a.Allocs(), "nothing requested from allocator")
	})
}

func TestSCBuckets_Set(t *testing.T) {
	t.Run("promotes bucket once chain exceeds threshold", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		scBuckets, reports := newTestSCBuckets(t, 4, 3, a)

		// Execute
		for _, k := range []int64{0, 4, 8} {
			assert.NoError(t, scBuckets.Set(k, k), "sets")
		}
		bt, _, _ := scBuckets.GetBucket(0)
		assert.Equal(t, model.ListBucket, bt, "still a list at threshold")
		assert.NoError(t, scBuckets.Set(12, int64(12)), "sets fourth")

		// Check
		bt, next, err := scBuckets.GetBucket(0)
		assert.NoError(t, err, "gets bucket")
		assert.Equal(t, model.TreeBucket, bt, "promoted")
		var keys []int64
		for r, ok := next(); ok; r, ok = next() {
			keys = append(keys, r.Key)
		}
		assert.Equal(t, []int64{0, 4, 8, 12}, keys, "in order")
		for _, k := range []int64{0, 4, 8, 12} {
			v, err := scBuckets.Get(k)
			assert.NoError(t, err, "found")
			assert.Equal(t, k, v, "value")
		}
		assert.Equal(t, int64(4), scBuckets.Len(), "four records")
		assert.Equal(t, []report{{diag.Debug, "bucket 0 promoted to tree with 4 records"}}, *reports, "promotion reported")
		assert.NoError(t, scBuckets.Validate(), "valid")
	})

	t.Run("overwrite does not count as a new record", func(t *testing.T) {
		scBuckets, _ := newTestSCBuckets(t, 4, 3, alloc.NewCountingAllocator())
		assert.NoError(t, scBuckets.Set(1, "a"), "sets")
		assert.NoError(t, scBuckets.Set(1, "b"), "overwrites")
		assert.Equal(t, int64(1), scBuckets.Len(), "one record")
		v, _ := scBuckets.Get(1)
		assert.Equal(t, "b", v, "latest value")
	})

	t.Run("failed promotion keeps list and stores record", func(t *testing.T) {
		// Prepare
		a := alloc.NewLimitedAllocator(1 << 20)
		scBuckets, reports := newTestSCBuckets(t, 4, 3, a)
		for _, k := range []int64{0, 4, 8} {
			assert.NoError(t, scBuckets.Set(k, k), "sets")
		}
		a.SetLimit(a.LiveBytes() + chain.NodeSize + rbtree.NodeSize)

		// Execute
		err := scBuckets.Set(12, int64(12))

		// Check
		assert.NoError(t, err, "record stored even though promotion failed")
		bt, _, _ := scBuckets.GetBucket(0)
		assert.Equal(t, model.ListBucket, bt, "still a list")
		v, err := scBuckets.Get(12)
		assert.NoError(t, err, "found")
		assert.Equal(t, int64(12), v, "value")
		assert.Len(t, *reports, 1, "one report")
		assert.Equal(t, diag.Warn, (*reports)[0].severity, "warning")
		assert.Contains(t, (*reports)[0].msg, "bucket 0 kept as list with 4 records", "message")
		assert.Equal(t, int64(4), scBuckets.Len(), "four records")
	})

	t.Run("allocation failure of a new record leaves storage unchanged", func(t *testing.T) {
		// Prepare
		a := alloc.NewLimitedAllocator(1 << 20)
		scBuckets, _ := newTestSCBuckets(t, 4, 3, a)
		assert.NoError(t, scBuckets.Set(1, 1), "sets")
		a.SetLimit(a.LiveBytes())

		// Execute
		err := scBuckets.Set(2, 2)

		// Check
		assert.ErrorIs(t, err, hmerrors.AllocationFailure{}, "allocation failure")
		_, err = scBuckets.Get(2)
		assert.ErrorIs(t, err, hmerrors.NoRecordFound{}, "not stored")
		assert.Equal(t, int64(1), scBuckets.Len(), "one record")
	})
}

func TestSCBuckets_GetBucketNo(t *testing.T) {
	t.Run("rejects bucket numbers outside the table", func(t *testing.T) {
		// Prepare
		scBuckets, err := NewSCBuckets(model.SCConf{TableSize: 4, PromotionThreshold: 8, HashAlgorithm: &outOfRangeAlgorithm{}, Allocator: alloc.NewCountingAllocator(), Reporter: diag.NopReporter{}})
		assert.NoError(t, err, "creates storage")

		// Execute
		_, err = scBuckets.GetBucketNo(1)

		// Check
		assert.Error(t, err, "out of range")
		assert.Error(t, scBuckets.Set(1, 1), "set fails")
		_, err = scBuckets.Get(1)
		assert.Error(t, err, "get fails")
		assert.NotErrorIs(t, err, hmerrors.NoRecordFound{}, "not a missing record")
	})

	t.Run("rejects out of range bucket number in GetBucket", func(t *testing.T) {
		scBuckets, _ := newTestSCBuckets(t, 4, 3, alloc.NewCountingAllocator())
		_, _, err := scBuckets.GetBucket(4)
		assert.Error(t, err, "too high")
		_, err = scBuckets.BucketLen(-1)
		assert.Error(t, err, "negative")
	})
}

func TestSCBuckets_Delete(t *testing.T) {
	t.Run("deletes from list and tree buckets", func(t *testing.T) {
		// Prepare
		scBuckets, _ := newTestSCBuckets(t, 4, 2, alloc.NewCountingAllocator())
		for k := int64(0); k < 20; k++ {
			assert.NoError(t, scBuckets.Set(k, fmt.Sprint(k)), "sets")
		}

		// Execute and Check
		for k := int64(0); k < 20; k += 2 {
			v, err := scBuckets.Delete(k)
			assert.NoError(t, err, "deletes")
			assert.Equal(t, fmt.Sprint(k), v, "value")
			assert.NoError(t, scBuckets.Validate(), "valid")
		}
		assert.Equal(t, int64(10), scBuckets.Len(), "half left")
		_, err := scBuckets.Delete(0)
		assert.ErrorIs(t, err, hmerrors.NoRecordFound{}, "already deleted")
		assert.Equal(t, int64(10), scBuckets.Len(), "count unchanged")
		n, _ := scBuckets.BucketLen(1)
		assert.Equal(t, 5, n, "odd keys of bucket 1 left")
	})
}

func TestSCBuckets_Destroy(t *testing.T) {
	t.Run("frees everything and refuses later operations", func(t *testing.T) {
		// Prepare
		a := alloc.NewCountingAllocator()
		scBuckets, _ := newTestSCBuckets(t, 8, 2, a)
		for k := int64(0); k < 100; k++ {
			_ = scBuckets.Set(k, k)
		}

		// Execute
		scBuckets.Destroy()
		scBuckets.Destroy()

		// Check
		assert.Equal(t, int64(0), a.Live(), "nothing live")
		assert.Equal(t, int64(0), a.LiveBytes(), "no live bytes")
		assert.Equal(t, a.Allocs(), a.Frees(), "allocs and frees match")
		assert.ErrorIs(t, scBuckets.Set(1, 1), hmerrors.UninitializedState{}, "set")
		_, err := scBuckets.Get(1)
		assert.ErrorIs(t, err, hmerrors.UninitializedState{}, "get")
		_, err = scBuckets.Delete(1)
		assert.ErrorIs(t, err, hmerrors.UninitializedState{}, "delete")
		_, _, err = scBuckets.GetBucket(0)
		assert.ErrorIs(t, err, hmerrors.UninitializedState{}, "get bucket")
		assert.Equal(t, int64(0), scBuckets.Len(), "empty")
	})
}
