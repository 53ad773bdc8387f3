// Package separatechaining implements the bucket storage of the hash map. Colliding records are chained in a
// list per bucket, and a chain growing past the promotion threshold is turned into a red-black tree.
package separatechaining

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/gostonefire/rbhashmap/hashfunc"
	"github.com/gostonefire/rbhashmap/hmerrors"
	"github.com/gostonefire/rbhashmap/internal/conf"
	"github.com/gostonefire/rbhashmap/internal/hash"
	"github.com/gostonefire/rbhashmap/internal/model"
)

// SCBuckets - Represents an in memory implementation of the Separate Chaining Collision Resolution Technique
// where a bucket holds either a collision chain or, once promoted, a red-black tree.
type SCBuckets struct {
	buckets            []bucket
	tableSize          int64
	promotionThreshold int
	records            int64
	hashAlgorithm      hashfunc.HashAlgorithm
	internalAlgorithm  bool
	allocator          alloc.Allocator
	reporter           diag.Reporter
}

// NewSCBuckets - Returns a pointer to a new instance of the Separate Chaining bucket storage with every bucket
// set to an empty list.
//   - scConf is a model.SCConf struct with resolved configuration, allocator and reporter must not be nil
//
// It returns:
//   - scBuckets which is a pointer to the created instance
//   - err which is of type hmerrors.AllocationFailure if the bucket array could not be allocated or the table size
//     exceeds conf.MaxTableSize
func NewSCBuckets(scConf model.SCConf) (scBuckets *SCBuckets, err error) {
	// If no HashAlgorithm was given then use the default internal
	var internalAlg bool
	if scConf.HashAlgorithm == nil {
		scConf.HashAlgorithm = hash.NewMultiplicativeHashAlgorithm(scConf.TableSize)
		internalAlg = true
	} else {
		scConf.HashAlgorithm.SetTableSize(scConf.TableSize)
	}

	tableSize := scConf.HashAlgorithm.GetTableSize()
	if tableSize < 1 {
		err = fmt.Errorf("hash algorithm reports table size %d, must be at least 1", tableSize)
		return
	}

	if tableSize > conf.MaxTableSize {
		err = hmerrors.AllocationFailure{Msg: fmt.Sprintf("table size %d exceeds maximum of %d buckets", tableSize, conf.MaxTableSize)}
		return
	}

	err = scConf.Allocator.Alloc(tableSize * bucketSize)
	if err != nil {
		err = fmt.Errorf("error while allocating bucket array of %d buckets: %w", tableSize, err)
		return
	}

	buckets := make([]bucket, tableSize)
	for i := range buckets {
		buckets[i] = newBucket(scConf.Allocator)
	}

	scBuckets = &SCBuckets{
		buckets:            buckets,
		tableSize:          tableSize,
		promotionThreshold: scConf.PromotionThreshold,
		hashAlgorithm:      scConf.HashAlgorithm,
		internalAlgorithm:  internalAlg,
		allocator:          scConf.Allocator,
		reporter:           scConf.Reporter,
	}

	return
}

// Destroy - Frees every bucket and then the bucket array. Calling it again is a no-op.
func (S *SCBuckets) Destroy() {
	if S.buckets == nil {
		return
	}

	for i := range S.buckets {
		S.buckets[i].destroy()
	}
	S.buckets = nil
	S.records = 0
	S.allocator.Free(S.tableSize * bucketSize)
}

// GetStorageParameters - Returns a struct with storage parameters from SCBuckets
func (S *SCBuckets) GetStorageParameters() (params model.StorageParameters) {
	params = model.StorageParameters{
		TableSize:          S.tableSize,
		PromotionThreshold: S.promotionThreshold,
		InternalAlgorithm:  S.internalAlgorithm,
	}

	return
}

// Len - Returns total number of records stored
func (S *SCBuckets) Len() int64 {
	return S.records
}

// GetBucketNo - Returns which bucket number that the given key results in
//   - key is the identifier of a record
//
// It returns an error if the hash algorithm gave a bucket number outside the table.
func (S *SCBuckets) GetBucketNo(key int64) (bucketNo int64, err error) {
	bucketNo = S.hashAlgorithm.HashFunc1(key)
	if bucketNo < 0 || bucketNo >= S.tableSize {
		err = fmt.Errorf("bucket number %d from hash algorithm is outside permitted range [0, %d)", bucketNo, S.tableSize)
		return
	}

	return
}

// GetBucket - Returns type and a record cursor of a bucket given the bucket number
//   - bucketNo is the identifier of a bucket, the number can be retrieved by call to GetBucketNo
//
// It returns:
//   - bucketType is either model.ListBucket or model.TreeBucket
//   - cursor hands out the records one by one, chain order for a list bucket and key order for a tree bucket
//   - err is a standard error if bucketNo is outside the table
func (S *SCBuckets) GetBucket(bucketNo int64) (bucketType model.BucketType, cursor func() (model.Record, bool), err error) {
	b, err := S.bucket(bucketNo)
	if err != nil {
		return
	}

	bucketType = b.bucketType
	cursor = b.cursor()

	return
}

// BucketLen - Returns number of records in a bucket given the bucket number
func (S *SCBuckets) BucketLen(bucketNo int64) (n int, err error) {
	b, err := S.bucket(bucketNo)
	if err != nil {
		return
	}
	n = b.len()

	return
}

// Get - Gets the value of the record that corresponds to the given key.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type hmerrors.NoRecordFound is also returned.
//   - err is either of type hmerrors.NoRecordFound or a standard error, if something went wrong
func (S *SCBuckets) Get(key int64) (value any, err error) {
	b, _, err := S.keyBucket(key)
	if err != nil {
		return
	}

	return b.get(key)
}

// Set - Updates an existing record with new value or adds it if no existing is found with same key.
// A list bucket growing past the promotion threshold is promoted to a tree. A failed promotion is reported as a
// warning and rolled back, the record itself is still stored in the list and Set succeeds.
//   - key is the identifier of the record
//   - value is the reference to store, it is never copied
//
// It returns:
//   - err is of type hmerrors.AllocationFailure if the record could not be stored, or a standard error
func (S *SCBuckets) Set(key int64, value any) (err error) {
	b, bucketNo, err := S.keyBucket(key)
	if err != nil {
		return
	}

	added, err := b.set(key, value)
	if err != nil {
		err = fmt.Errorf("error while adding record with key %d to bucket %d: %w", key, bucketNo, err)
		return
	}
	if added {
		S.records++
	}

	if added && b.mustPromote(S.promotionThreshold) {
		n := b.len()
		if perr := b.promote(S.allocator); perr != nil {
			S.reporter.Report(diag.Warn, fmt.Sprintf("bucket %d kept as list with %d records: %s", bucketNo, n, perr))
			return
		}
		S.reporter.Report(diag.Debug, fmt.Sprintf("bucket %d promoted to tree with %d records", bucketNo, n))
	}

	return
}

// Delete - Removes the record with matching key from its bucket.
//   - key is the identifier of the record
//
// It returns:
//   - value is the value of the removed record
//   - err is either of type hmerrors.NoRecordFound or a standard error, if something went wrong
func (S *SCBuckets) Delete(key int64) (value any, err error) {
	b, _, err := S.keyBucket(key)
	if err != nil {
		return
	}

	value, err = b.delete(key)
	if err != nil {
		return
	}
	S.records--

	return
}

// Validate - Checks the red-black properties of every tree bucket
func (S *SCBuckets) Validate() (err error) {
	for i := range S.buckets {
		if err = S.buckets[i].validate(); err != nil {
			err = fmt.Errorf("error while validating bucket %d: %w", i, err)
			return
		}
	}

	return
}

// bucket - Returns a pointer to the bucket with number bucketNo
func (S *SCBuckets) bucket(bucketNo int64) (b *bucket, err error) {
	if S.buckets == nil {
		err = hmerrors.UninitializedState{Msg: "bucket storage has been destroyed"}
		return
	}
	if bucketNo < 0 || bucketNo >= S.tableSize {
		err = fmt.Errorf("bucket number %d is outside permitted range [0, %d)", bucketNo, S.tableSize)
		return
	}
	b = &S.buckets[bucketNo]

	return
}

// keyBucket - Returns a pointer to the bucket the given key belongs to, together with its number
func (S *SCBuckets) keyBucket(key int64) (b *bucket, bucketNo int64, err error) {
	bucketNo, err = S.GetBucketNo(key)
	if err != nil {
		return
	}
	b, err = S.bucket(bucketNo)

	return
}
