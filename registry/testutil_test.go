package registry

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Verbose() {
		log.SetLevel(log.DebugLevel)
	}
	os.Exit(m.Run())
}

// sleepRecorder is a SleepFunc which records requested durations instead of
// sleeping.
type sleepRecorder struct {
	durations []time.Duration
	mu        sync.Mutex
}

func (sr *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.durations = append(sr.durations, d)
	return ctx.Err()
}

func (sr *sleepRecorder) Durations() []time.Duration {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return append([]time.Duration{}, sr.durations...)
}
