package rbhashmap

import (
	"fmt"
	"github.com/gostonefire/rbhashmap/alloc"
	"github.com/gostonefire/rbhashmap/diag"
	"github.com/gostonefire/rbhashmap/hashfunc"
	"github.com/gostonefire/rbhashmap/internal/conf"
	"github.com/gostonefire/rbhashmap/internal/hash"
	"github.com/gostonefire/rbhashmap/internal/model"
	"github.com/gostonefire/rbhashmap/internal/storage/separatechaining"
	"unsafe"
)

// BucketManagement - Interface for any bucket storage implementation
type BucketManagement interface {
	Destroy()
	Get(key int64) (value any, err error)
	Set(key int64, value any) (err error)
	Delete(key int64) (value any, err error)
	GetBucketNo(key int64) (bucketNo int64, err error)
	GetBucket(bucketNo int64) (bucketType model.BucketType, cursor func() (model.Record, bool), err error)
	BucketLen(bucketNo int64) (n int, err error)
	Len() int64
	Validate() (err error)
	GetStorageParameters() (params model.StorageParameters)
}

// BucketType - Tells whether a bucket stores its records in a list or in a red-black tree
type BucketType = model.BucketType

// Record - A key and the value reference stored with it
type Record = model.Record

const (
	ListBucket = model.ListBucket
	TreeBucket = model.TreeBucket
)

// DefaultTableSize - Number of buckets used when Conf.TableSize is zero or less
const DefaultTableSize = conf.DefaultTableSize

// DefaultPromotionThreshold - Chain length above which a bucket is promoted when Conf.PromotionThreshold is zero or less
const DefaultPromotionThreshold = conf.DefaultPromotionThreshold

// MaxTableSize - Largest table size NewHashMap accepts
const MaxTableSize = conf.MaxTableSize

// mapRecordSize - Number of bytes accounted for the HashMap struct itself
var mapRecordSize = int64(unsafe.Sizeof(HashMap{}))

// Conf - Configuration for a new hash map, any zero value field gets its default.
//   - TableSize is the number of buckets, defaults to DefaultTableSize
//   - PromotionThreshold is the chain length above which a bucket becomes a red-black tree, defaults to DefaultPromotionThreshold
//   - HashAlgorithm is an optional custom bucket selection algorithm following the hashfunc.HashAlgorithm interface
//   - Allocator is the allocation capability for every node and the bucket array, defaults to an alloc.CountingAllocator
//   - Reporter receives diagnostics, defaults to a stderr reporter
type Conf struct {
	TableSize          int64
	PromotionThreshold int
	HashAlgorithm      hashfunc.HashAlgorithm
	Allocator          alloc.Allocator
	Reporter           diag.Reporter
}

// HashMapInfo - Information structure containing some information about the hash map created
//   - NumberOfBuckets is the total number of buckets in the hash map
//   - PromotionThreshold is the chain length above which a bucket is promoted to a red-black tree
//   - InternalAlgorithm is true if the internal multiplicative hash algorithm is used
type HashMapInfo struct {
	NumberOfBuckets    int64
	PromotionThreshold int
	InternalAlgorithm  bool
}

// HashMapStat - Statistics on the overall usage and distribution over buckets
//   - Records is the total number of records stored
//   - ListRecords is the number of records stored in list buckets
//   - TreeRecords is the number of records stored in tree buckets
//   - ListBuckets is the number of buckets still being lists
//   - TreeBuckets is the number of buckets promoted to red-black trees
//   - LargestBucket is the number of records in the fullest bucket
//   - BucketDistribution is the number of records stored in each bucket
type HashMapStat struct {
	Records            int64
	ListRecords        int64
	TreeRecords        int64
	ListBuckets        int64
	TreeBuckets        int64
	LargestBucket      int64
	BucketDistribution []int64
}

// HashMap - The main implementation struct
type HashMap struct {
	bucketManagement BucketManagement
	allocator        alloc.Allocator
	reporter         diag.Reporter
	numberOfBuckets  int64
}

// NewHashMap - Returns a new hash map with a fixed number of buckets, every bucket starting out as an empty list.
//   - conf is a Conf struct, zero values are replaced by defaults
//
// It returns:
//   - hashMap is a pointer to a HashMap struct
//   - hashMapInfo is a HashMapInfo struct containing some data regarding the hash map created.
//   - err is of type hmerrors.AllocationFailure if the map record or the bucket array could not be allocated, or if
//     TableSize exceeds MaxTableSize
func NewHashMap(conf Conf) (hashMap *HashMap, hashMapInfo HashMapInfo, err error) {
	if conf.TableSize <= 0 {
		conf.TableSize = DefaultTableSize
	}
	if conf.PromotionThreshold <= 0 {
		conf.PromotionThreshold = DefaultPromotionThreshold
	}
	if conf.Allocator == nil {
		conf.Allocator = alloc.NewCountingAllocator()
	}
	if conf.Reporter == nil {
		conf.Reporter = diag.NewStderrReporter()
	}

	err = conf.Allocator.Alloc(mapRecordSize)
	if err != nil {
		err = fmt.Errorf("error while allocating hash map record: %w", err)
		conf.Reporter.Report(diag.Error, err.Error())
		return
	}

	var bm BucketManagement
	bm, err = separatechaining.NewSCBuckets(model.SCConf{
		TableSize:          conf.TableSize,
		PromotionThreshold: conf.PromotionThreshold,
		HashAlgorithm:      conf.HashAlgorithm,
		Allocator:          conf.Allocator,
		Reporter:           conf.Reporter,
	})
	if err != nil {
		conf.Allocator.Free(mapRecordSize)
		conf.Reporter.Report(diag.Error, err.Error())
		return
	}

	sp := bm.GetStorageParameters()

	// Prepare return data
	hashMap = &HashMap{
		bucketManagement: bm,
		allocator:        conf.Allocator,
		reporter:         conf.Reporter,
		numberOfBuckets:  sp.TableSize,
	}

	hashMapInfo = HashMapInfo{
		NumberOfBuckets:    sp.TableSize,
		PromotionThreshold: sp.PromotionThreshold,
		InternalAlgorithm:  sp.InternalAlgorithm,
	}

	return
}

// Destroy - Frees every list node, tree node and tree sentinel, then the bucket array and the map record.
// Stored values are left alone. Destroy on a nil or already destroyed map does nothing, any other operation on a
// destroyed map fails with hmerrors.UninitializedState.
func (H *HashMap) Destroy() {
	if H == nil || H.bucketManagement == nil {
		return
	}

	H.bucketManagement.Destroy()
	H.bucketManagement = nil
	H.allocator.Free(mapRecordSize)
}

// NewMultiplicativeHashAlgorithm - Returns the hash algorithm used when Conf.HashAlgorithm is nil
func NewMultiplicativeHashAlgorithm(tableSize int64) hashfunc.HashAlgorithm {
	return hash.NewMultiplicativeHashAlgorithm(tableSize)
}

// NewDivisionHashAlgorithm - Returns a hash algorithm putting key in bucket key mod table size
func NewDivisionHashAlgorithm(tableSize int64) hashfunc.HashAlgorithm {
	return hash.NewDivisionHashAlgorithm(tableSize)
}
