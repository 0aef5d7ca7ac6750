package registry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestBackoffPolicyRetry(t *testing.T) {
	testCases := []struct {
		maxRetries    int
		err           error
		expectedCalls int
	}{
		{maxRetries: 0, err: transient("op", 500, nil), expectedCalls: 1},
		{maxRetries: 3, err: transient("op", 500, nil), expectedCalls: 4},
		{maxRetries: 3, err: ErrNotFound, expectedCalls: 1},
		{maxRetries: 3, err: ErrRateLimited, expectedCalls: 1},
		{maxRetries: 3, err: nil, expectedCalls: 1},
	}
	for i, testCase := range testCases {
		var (
			sr     = &sleepRecorder{}
			policy = DefaultBackoffPolicy()
			calls  = 0
		)
		policy.MaxRetries = testCase.maxRetries
		policy.Sleep = sr.Sleep

		err := policy.Retry(context.Background(), "op", func() error {
			calls++
			return testCase.err
		})
		if errors.Cause(err) != errors.Cause(testCase.err) {
			t.Errorf("[i=%v] Expected err=%v but actual=%v", i, testCase.err, err)
		}
		if expected, actual := testCase.expectedCalls, calls; actual != expected {
			t.Errorf("[i=%v] Expected calls=%v but actual=%v", i, expected, actual)
		}
		if expected, actual := testCase.expectedCalls-1, len(sr.Durations()); actual != expected {
			t.Errorf("[i=%v] Expected sleeps=%v but actual=%v", i, expected, actual)
		}
	}
}

func TestBackoffPolicyNil(t *testing.T) {
	var policy *BackoffPolicy
	calls := 0
	if err := policy.Retry(context.Background(), "op", func() error { calls++; return nil }); err != nil {
		t.Fatal(err)
	}
	if expected, actual := 1, calls; actual != expected {
		t.Errorf("Expected calls=%v but actual=%v", expected, actual)
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := Sleep(ctx, time.Minute); err != context.Canceled {
		t.Errorf("Expected err=%v but actual=%v", context.Canceled, err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Expected cancelled sleep to return promptly but took %s", elapsed)
	}
}
