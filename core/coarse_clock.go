package core

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

var (
	coarseClockOnce sync.Once
	coarseNow       unsafe.Pointer // *time.Time
)

// StartCoarseClock starts the background goroutine that caches time.Now()
// every 500µs. Records stamped from the cache stay well inside the
// millisecond precision that serialized timestamps carry. Safe to call
// multiple times; the goroutine starts exactly once and runs for the
// lifetime of the process, matching how long logging is typically live.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value.
// StartCoarseClock must have been called before using CoarseNow.
func CoarseNow() time.Time {
	return *(*time.Time)(atomic.LoadPointer(&coarseNow))
}
