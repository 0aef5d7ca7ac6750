package registry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// Production pacing.
var (
	DefaultRateLimitPause = 60 * time.Second
	DefaultTopicPause     = 2 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// BackoffPolicy holds every pause the registry sweeps perform.  Tests swap
// Sleep for a recorder so no real time passes.
type BackoffPolicy struct {
	RateLimitPause time.Duration // Pause after an explicit rate-limit response.
	TopicPause     time.Duration // Pause after each topic query.

	// Bounded retry of transient failures.  MaxRetries=0 disables retry.
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Jitter          float64

	Sleep SleepFunc
}

// DefaultBackoffPolicy returns the production pacing with retries disabled.
func DefaultBackoffPolicy() *BackoffPolicy {
	p := &BackoffPolicy{
		RateLimitPause:  DefaultRateLimitPause,
		TopicPause:      DefaultTopicPause,
		MaxRetries:      0,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Jitter:          0.5,
		Sleep:           Sleep,
	}
	return p
}

// Sleep is the real-time SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pause sleeps for d using the configured SleepFunc.
func (p *BackoffPolicy) Pause(ctx context.Context, d time.Duration) error {
	if p == nil || p.Sleep == nil {
		return Sleep(ctx, d)
	}
	return p.Sleep(ctx, d)
}

// Retry invokes fn, retrying only transient failures for up to MaxRetries
// additional attempts with jittered exponential intervals.
func (p *BackoffPolicy) Retry(ctx context.Context, op string, fn func() error) error {
	if p == nil || p.MaxRetries <= 0 {
		return fn()
	}

	b := p.newBackOff()
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		d := b.NextBackOff()
		if d == backoff.Stop {
			return err
		}
		log.WithField("op", op).WithField("attempt", attempt).Debugf("Transient failure: %s; waiting for %s before retrying", err, d)
		if sleepErr := p.Pause(ctx, d); sleepErr != nil {
			return err
		}
	}
}

func (p *BackoffPolicy) newBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = time.Duration(0)
	exp.RandomizationFactor = p.Jitter
	exp.Multiplier = 1.5
	b := backoff.WithMaxRetries(exp, uint64(p.MaxRetries))
	b.Reset()
	return b
}
