package snaptrade

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TimeSync keeps the offset between the local clock and the API server so
// that signed requests carry a timestamp the server accepts.
type TimeSync struct {
	getServerTime func(ctx context.Context) (time.Time, error)
	log           logrus.FieldLogger

	mu       sync.RWMutex
	offset   time.Duration // server - local
	lastSync time.Time
}

// NewTimeSync creates a time synchronization manager.
func NewTimeSync(getServerTime func(ctx context.Context) (time.Time, error), log logrus.FieldLogger) *TimeSync {
	return &TimeSync{getServerTime: getServerTime, log: log}
}

// Sync measures the offset once.
func (ts *TimeSync) Sync(ctx context.Context) error {
	localBefore := time.Now()
	serverTime, err := ts.getServerTime(ctx)
	if err != nil {
		return err
	}
	// Assume network latency is symmetric
	latency := time.Since(localBefore) / 2
	local := localBefore.Add(latency)

	ts.observe(serverTime.Sub(local))
	return nil
}

func (ts *TimeSync) observe(offset time.Duration) {
	ts.mu.Lock()
	ts.offset = offset
	ts.lastSync = time.Now()
	ts.mu.Unlock()

	ts.log.WithField("offset", offset).Debug("snaptrade time sync")
}

// Now returns the current time adjusted for the server offset.
func (ts *TimeSync) Now() time.Time {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return time.Now().Add(ts.offset)
}

// Offset returns the current offset.
func (ts *TimeSync) Offset() time.Duration {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.offset
}

// LastSync reports when the offset was last measured; zero if never.
func (ts *TimeSync) LastSync() time.Time {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.lastSync
}
