package helper

import "gorm.io/gorm"

// RangeChunkSize is how many rows one range read pulls at a time. Reports
// need the whole date range in memory before grouping, so wide ranges are
// concatenated chunk by chunk instead of relying on a single unbounded
// select.
const RangeChunkSize = 1000

// FindAllChunked runs query page by page (Offset/Limit) and appends every
// chunk into dest. query must already carry its filters and ordering.
func FindAllChunked[T any](query *gorm.DB, dest *[]T) error {
	offset := 0
	for {
		var chunk []T
		if err := query.Session(&gorm.Session{}).
			Offset(offset).
			Limit(RangeChunkSize).
			Find(&chunk).Error; err != nil {
			return err
		}
		*dest = append(*dest, chunk...)
		if len(chunk) < RangeChunkSize {
			return nil
		}
		offset += RangeChunkSize
	}
}
