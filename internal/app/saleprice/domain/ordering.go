package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Bucket classifies a sale price window relative to an evaluation time.
type Bucket int

// Buckets in ascending display order. Settled windows (forever, past) sort before
// transient ones (present, future).
const (
	BucketUnscheduled Bucket = iota // never started, not ended
	BucketForever                   // started, no end
	BucketPast                      // ended, started or not
	BucketPresent                   // started, end still ahead
	BucketFuture                    // starts later
)

var bucketNames = [...]string{"unscheduled", "forever", "past", "present", "future"}

func (b Bucket) String() string {
	if b < 0 || int(b) >= len(bucketNames) {
		return "unknown"
	}
	return bucketNames[b]
}

// BucketAt classifies the sale price window at now. The result depends on now only and
// is never stored. An end at or before now is past whatever the start, since such a
// window can never become active again.
func (s *SalePrice) BucketAt(now time.Time) Bucket {
	switch {
	case s.endAt != nil && !s.endAt.After(now):
		return BucketPast
	case s.startAt == nil:
		return BucketUnscheduled
	case s.startAt.After(now):
		return BucketFuture
	case s.endAt == nil:
		return BucketForever
	default:
		return BucketPresent
	}
}

// Ordered returns a new slice sorted by bucket at now, then start_at ascending, with
// created_at and id as tie-breakers so the order is total.
func Ordered(sales []*SalePrice, now time.Time) []*SalePrice {
	out := slices.Clone(sales)
	slices.SortStableFunc(out, func(a, b *SalePrice) int {
		if c := cmp.Compare(a.BucketAt(now), b.BucketAt(now)); c != 0 {
			return c
		}
		if c := compareStart(a.startAt, b.startAt); c != 0 {
			return c
		}
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	return out
}

func compareStart(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
