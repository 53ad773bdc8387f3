package rbhashmap

import (
	"github.com/gostonefire/rbhashmap/hmerrors"
)

// BucketRecords - Is used to iterate over the records of one bucket one by one.
type BucketRecords struct {
	cursor  func() (Record, bool)
	next    Record
	hasNext bool
}

// newBucketRecords - Returns a pointer to a new BucketRecords struct positioned at the first record
func newBucketRecords(cursor func() (Record, bool)) *BucketRecords {
	records := &BucketRecords{cursor: cursor}
	records.next, records.hasNext = cursor()

	return records
}

// HasNext - Returns true if there are more records to be fetched from a call to Next.
func (B *BucketRecords) HasNext() bool {
	return B.hasNext
}

// Next - Returns record.
// It returns:
//   - record is the next record in the bucket.
//   - err is of type hmerrors.NoRecordFound if there are no more records when calling this function.
func (B *BucketRecords) Next() (record Record, err error) {
	if !B.hasNext {
		err = hmerrors.NoRecordFound{}
		return
	}

	record = B.next
	B.next, B.hasNext = B.cursor()

	return
}
