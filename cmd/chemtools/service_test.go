package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vbagdi/ResearchCode/discovery"
	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pipeline"
)

type emptyCollector struct{}

func (emptyCollector) Collect(_ context.Context, req discovery.Request) (*discovery.Result, error) {
	return &discovery.Result{Stats: domain.CollectStats{TopicsSearched: len(req.Topics)}}, nil
}

func testSchedulerOpener(t *testing.T, schedule string, closed *int) func() (*pipeline.Scheduler, func() error, error) {
	return func() (*pipeline.Scheduler, func() error, error) {
		cfg := pipeline.NewConfig()
		cfg.Output = filepath.Join(t.TempDir(), "tools.json")
		p := pipeline.New(cfg, emptyCollector{}, nil)
		closeFn := func() error {
			*closed++
			return nil
		}
		return pipeline.NewScheduler(p, schedule), closeFn, nil
	}
}

func TestSchedulerWrapper(t *testing.T) {
	var closed int
	w := newSchedulerWrapper(testSchedulerOpener(t, "@every 1h", &closed))

	if err := w.Start(nil); err != nil {
		t.Fatal(err)
	}
	if expected, actual := pipeline.ErrAlreadyRunning, w.Start(nil); actual != expected {
		t.Errorf("Expected err=%v but actual=%v", expected, actual)
	}
	if err := w.Stop(nil); err != nil {
		t.Fatal(err)
	}
	if expected, actual := 1, closed; actual != expected {
		t.Errorf("Expected closed=%v but actual=%v", expected, actual)
	}
	if expected, actual := pipeline.ErrNotRunning, w.Stop(nil); actual != expected {
		t.Errorf("Expected err=%v but actual=%v", expected, actual)
	}

	// Restartable after a stop.
	if err := w.Start(nil); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(nil); err != nil {
		t.Fatal(err)
	}
	if expected, actual := 2, closed; actual != expected {
		t.Errorf("Expected closed=%v but actual=%v", expected, actual)
	}
}

func TestSchedulerWrapperInvalidSchedule(t *testing.T) {
	var closed int
	w := newSchedulerWrapper(testSchedulerOpener(t, "whenever", &closed))

	if err := w.Start(nil); err == nil {
		t.Fatalf("Expected error for invalid schedule")
	}
	if expected, actual := 1, closed; actual != expected {
		t.Errorf("Expected closed=%v but actual=%v", expected, actual)
	}
	if expected, actual := pipeline.ErrNotRunning, w.Stop(nil); actual != expected {
		t.Errorf("Expected err=%v but actual=%v", expected, actual)
	}
}

func TestServiceInstallConfig(t *testing.T) {
	origSchedule, origSeedsFile, origFormat, origUser := Schedule, SeedsFile, discovery.InputFormat, SystemUser
	defer func() {
		Schedule, SeedsFile, discovery.InputFormat, SystemUser = origSchedule, origSeedsFile, origFormat, origUser
	}()

	Schedule = ""
	SeedsFile = "seeds.lst"
	discovery.InputFormat = "json"
	SystemUser = "chem"

	cfg, err := serviceInstallConfig()
	if err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := wd, cfg.WorkingDirectory; actual != expected {
		t.Errorf("Expected WorkingDirectory=%v but actual=%v", expected, actual)
	}
	if expected, actual := "chem", cfg.UserName; actual != expected {
		t.Errorf("Expected UserName=%v but actual=%v", expected, actual)
	}

	args := strings.Join(cfg.Arguments, " ")
	for _, expected := range []string{
		"service run",
		"--schedule " + pipeline.DefaultSchedule,
		"--seeds-file seeds.lst",
		"--list-format json",
	} {
		if !strings.Contains(args, expected) {
			t.Errorf("Expected arguments to contain %q but actual=%v", expected, args)
		}
	}
	if strings.Contains(args, "--seed ") {
		t.Errorf("Expected --seed to be omitted when a seeds file is given, actual=%v", args)
	}
}

func TestDoServiceVerbUnrecognized(t *testing.T) {
	if err := doServiceVerb("explode"); err == nil {
		t.Errorf("Expected error for unrecognized service action")
	}
}
