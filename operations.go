package rbhashmap

import (
	"errors"
	"fmt"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/gostonefire/rbhashmap/hmerrors"
)

// Insert - Stores value under key. If key already exists its value is overwritten, otherwise a new record is added
// to the bucket the key hashes to. A list bucket growing past the promotion threshold is promoted to a red-black
// tree, a promotion that can not be completed leaves the bucket as a list and is reported as a warning.
//   - key is the identifier of a record
//   - value is a reference that is stored as is, it is never copied or freed by the hash map
//
// It returns:
//   - err is of type hmerrors.AllocationFailure if a node could not be allocated (the map is then unchanged),
//     hmerrors.UninitializedState if the map is nil or destroyed, or a standard error
func (H *HashMap) Insert(key int64, value any) (err error) {
	if err = H.check(); err != nil {
		return
	}

	err = H.bucketManagement.Set(key, value)
	if err != nil {
		H.report(err)
	}

	return
}

// Find - Gets the value stored under key.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type hmerrors.NoRecordFound is also returned.
//   - err is either of type hmerrors.NoRecordFound, hmerrors.UninitializedState or a standard error
func (H *HashMap) Find(key int64) (value any, err error) {
	if err = H.check(); err != nil {
		return
	}

	value, err = H.bucketManagement.Get(key)
	if err != nil {
		H.report(err)
	}

	return
}

// Delete - Removes the record stored under key. Deleting a key that is not present is not an error.
// An emptied tree bucket stays a tree.
//   - key is the identifier of a record
func (H *HashMap) Delete(key int64) (err error) {
	_, err = H.Pop(key)
	if errors.Is(err, hmerrors.NoRecordFound{}) {
		err = nil
	}

	return
}

// Pop - Returns the value stored under key and removes the record from the hash map.
//   - key is the identifier of a record
//
// It returns:
//   - value is the value of the matching record if found, if not found an error of type hmerrors.NoRecordFound is also returned.
//   - err is either of type hmerrors.NoRecordFound, hmerrors.UninitializedState or a standard error
func (H *HashMap) Pop(key int64) (value any, err error) {
	if err = H.check(); err != nil {
		return
	}

	value, err = H.bucketManagement.Delete(key)
	if err != nil {
		H.report(err)
	}

	return
}

// Len - Returns number of records stored, zero for a nil or destroyed map
func (H *HashMap) Len() int64 {
	if H.check() != nil {
		return 0
	}
	return H.bucketManagement.Len()
}

// Stat - Walks through the entire set of buckets and produce a HashMapStat struct with information.
//   - includeDistribution set to true will include a slice of length NumberOfBuckets with number of records per bucket, false will set HashMapStat.BucketDistribution to nil.
func (H *HashMap) Stat(includeDistribution bool) (hashMapStat *HashMapStat, err error) {
	if err = H.check(); err != nil {
		return
	}

	var hms HashMapStat
	if includeDistribution {
		hms.BucketDistribution = make([]int64, H.numberOfBuckets)
	}

	// Iterate over every available bucket
	var bucketType BucketType
	var n int
	for i := int64(0); i < H.numberOfBuckets; i++ {
		bucketType, _, err = H.bucketManagement.GetBucket(i)
		if err != nil {
			return
		}
		n, err = H.bucketManagement.BucketLen(i)
		if err != nil {
			return
		}

		hms.Records += int64(n)
		if bucketType == TreeBucket {
			hms.TreeBuckets++
			hms.TreeRecords += int64(n)
		} else {
			hms.ListBuckets++
			hms.ListRecords += int64(n)
		}
		if int64(n) > hms.LargestBucket {
			hms.LargestBucket = int64(n)
		}
		if includeDistribution {
			hms.BucketDistribution[i] = int64(n)
		}
	}

	hashMapStat = &hms
	return
}

// GetBucketNo - Returns which bucket number that the given key results in
//   - key is the identifier of a record
//
// It returns an error if a custom hash algorithm gives a bucket number outside the table.
func (H *HashMap) GetBucketNo(key int64) (bucketNo int64, err error) {
	if err = H.check(); err != nil {
		return
	}

	return H.bucketManagement.GetBucketNo(key)
}

// BucketType - Returns whether the bucket with number bucketNo is a list or a red-black tree
func (H *HashMap) BucketType(bucketNo int64) (bucketType BucketType, err error) {
	if err = H.check(); err != nil {
		return
	}

	bucketType, _, err = H.bucketManagement.GetBucket(bucketNo)

	return
}

// GetBucket - Returns type and records of a bucket given the bucket number.
//   - bucketNo is the identifier of a bucket, the number can be retrieved by call to GetBucketNo
//
// It returns:
//   - bucketType is either ListBucket or TreeBucket
//   - records is a BucketRecords struct to iterate over the records, most recently added first for a list and in key
//     order for a tree. The map must not be modified while iterating.
//   - err is of type hmerrors.UninitializedState or a standard error if bucketNo is outside the table
func (H *HashMap) GetBucket(bucketNo int64) (bucketType BucketType, records *BucketRecords, err error) {
	if err = H.check(); err != nil {
		return
	}

	bucketType, cursor, err := H.bucketManagement.GetBucket(bucketNo)
	if err != nil {
		return
	}
	records = newBucketRecords(cursor)

	return
}

// Validate - Checks the red-black properties of every tree bucket and returns the first violation found
func (H *HashMap) Validate() (err error) {
	if err = H.check(); err != nil {
		return
	}

	err = H.bucketManagement.Validate()
	if err != nil {
		H.report(err)
	}

	return
}

// check - Detects a nil, zero value or destroyed hash map, the latter two are also reported.
// A zero value map has no reporter and reports to stderr.
func (H *HashMap) check() (err error) {
	if H == nil {
		return hmerrors.UninitializedState{Msg: "hash map is nil"}
	}
	if H.reporter == nil {
		err = hmerrors.UninitializedState{Msg: "hash map is not created by NewHashMap"}
		diag.NewStderrReporter().Report(diag.Error, err.Error())
		return
	}
	if H.bucketManagement == nil {
		err = hmerrors.UninitializedState{Msg: "hash map has been destroyed"}
		H.reporter.Report(diag.Error, err.Error())
	}

	return
}

// report - Reports an error at error severity, a missing record is an expected outcome and not reported
func (H *HashMap) report(err error) {
	if errors.Is(err, hmerrors.NoRecordFound{}) {
		return
	}
	H.reporter.Report(diag.Error, fmt.Sprintf("hash map operation failed: %s", err))
}
