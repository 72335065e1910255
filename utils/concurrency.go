package utils

import (
	"sync"
	"time"
)

// WorkerPool bounds the number of jobs running at once and can enforce a
// minimum gap between job starts. Submit blocks until a slot frees up, so a
// pool of size 1 runs jobs strictly in submission order.
type WorkerPool struct {
	slots chan struct{}
	wg    sync.WaitGroup

	gapMu sync.Mutex
	gap   time.Duration
	last  time.Time
}

// NewWorkerPool creates a pool running at most size jobs concurrently, with
// at least minGapMs milliseconds between job starts (0 disables the gap).
func NewWorkerPool(size, minGapMs int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{
		slots: make(chan struct{}, size),
		gap:   time.Duration(minGapMs) * time.Millisecond,
	}
}

// Submit schedules a job, blocking until a slot is available.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.slots <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.slots }()

		wp.waitForGap()
		job()
	}()
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) waitForGap() {
	if wp.gap <= 0 {
		return
	}
	wp.gapMu.Lock()
	defer wp.gapMu.Unlock()

	if since := time.Since(wp.last); since < wp.gap {
		time.Sleep(wp.gap - since)
	}
	wp.last = time.Now()
}
