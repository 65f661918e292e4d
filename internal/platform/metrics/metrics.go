package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps in-process request counters. Cheap enough to update on
// every request without coordination beyond the atomics themselves.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rejectedOrigins uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 403 {
		atomic.AddUint64(&c.rejectedOrigins, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	rejected := atomic.LoadUint64(&c.rejectedOrigins)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          errs,
		"rejectedOriginsTotal": rejected,
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
	}
}
