package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kardianos/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbagdi/ResearchCode/db"
	"github.com/vbagdi/ResearchCode/discovery"
	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pipeline"
)

const ServiceName = "chemtools-discovery"

var (
	SystemUser     string
	SystemPassword string
)

func newServiceCmd() *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"svc", "sv"},
		Short:   "Scheduled discovery system service management",
		Long:    "Install, remove, start or stop the scheduled discovery system service.  The service reads the GitHub token from the TOML configuration rather than its command line",
	}

	verbs := []struct {
		use     string
		aliases []string
		short   string
		done    string
	}{
		{"install", []string{"inst", "i"}, "Install the scheduled discovery system service", "installed"},
		{"uninstall", []string{"uninst", "u", "remove", "rm", "r"}, "Uninstall the scheduled discovery system service", "uninstalled"},
		{"start", nil, "Start the scheduled discovery system service", "started"},
		{"stop", nil, "Stop the scheduled discovery system service", "stopped"},
		{"restart", nil, "Restart the scheduled discovery system service", "restarted"},
		{"run", nil, "Run scheduled discovery in the foreground as the service manager does", "ran"},
	}
	for _, verb := range verbs {
		verb := verb
		verbCmd := &cobra.Command{
			Use:     verb.use,
			Aliases: verb.aliases,
			Short:   verb.short,
			PreRun: func(_ *cobra.Command, _ []string) {
				initLogging()
			},
			Run: func(cmd *cobra.Command, args []string) {
				if err := doServiceVerb(verb.use); err != nil {
					log.Fatalf("main: %s", err)
				}
				log.Infof("Discovery service %v", verb.done)
			},
		}
		switch verb.use {
		case "install":
			addPipelineFlags(verbCmd)
			verbCmd.Flags().StringVarP(&SystemUser, "user", "u", "", "System username to run service as")
			verbCmd.Flags().StringVarP(&SystemPassword, "password", "p", "", "System user account password (windows only)")
		case "run":
			addPipelineFlags(verbCmd)
		}
		serviceCmd.AddCommand(verbCmd)
	}

	return serviceCmd
}

func doServiceVerb(action string) error {
	var (
		svcConfig = &service.Config{
			Name: ServiceName,
		}
		w = newSchedulerWrapper(openScheduler)
	)

	switch action {
	case "run", "start", "stop", "restart", "uninstall":

	case "install":
		cfg, err := serviceInstallConfig()
		if err != nil {
			return err
		}
		svcConfig = cfg

	default:
		return fmt.Errorf("unrecognized service action: %q, must be one of: %v, or run", action, service.ControlAction)
	}

	s, err := service.New(w, svcConfig)
	if err != nil {
		return err
	}

	if action == "run" {
		return s.Run()
	}
	return service.Control(s, action)
}

// serviceInstallConfig captures the current pipeline flags as the installed
// service's arguments.
func serviceInstallConfig() (*service.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	schedule := Schedule
	if schedule == "" {
		schedule = pipeline.DefaultSchedule
	}

	args := []string{
		"service", "run",
		"--db", DBFile,
		"--output", Output,
		"--schedule", schedule,
		"--min-stars", fmt.Sprint(MinStars),
		"--concurrency", fmt.Sprint(Concurrency),
		"--max-retries", fmt.Sprint(MaxRetries),
		"--cache-ttl", CacheTTL.String(),
	}
	if TopicsFile != "" {
		args = append(args, "--topics-file", TopicsFile)
	} else {
		args = append(args, "--topic", strings.Join(Topics, ","))
	}
	if SeedsFile != "" {
		args = append(args, "--seeds-file", SeedsFile)
	} else {
		args = append(args, "--seed", strings.Join(Seeds, ","))
	}
	if TopicsFile != "" || SeedsFile != "" {
		args = append(args, "--list-format", discovery.InputFormat)
	}
	if NoCache {
		args = append(args, "--no-cache")
	}
	if log.GetLevel() == log.DebugLevel {
		args = append(args, "-v")
	} else if log.GetLevel() == log.ErrorLevel {
		args = append(args, "-q")
	}
	log.Debugf("Service arguments: %v", args)

	svcConfig := &service.Config{
		Name:             ServiceName,
		DisplayName:      "Chemtools Discovery",
		Description:      "Scheduled chemistry tool discovery runs",
		WorkingDirectory: wd,
		Arguments:        args,
		UserName:         SystemUser,
	}
	if SystemPassword != "" {
		svcConfig.Option = service.KeyValue{
			"Password": SystemPassword,
		}
	}
	return svcConfig, nil
}

// openScheduler opens the DB and builds a scheduler over the configured
// pipeline.  The returned func closes the DB.
func openScheduler() (*pipeline.Scheduler, func() error, error) {
	req, err := discoverRequest()
	if err != nil {
		return nil, nil, err
	}

	dbClient := db.NewClient(db.NewBoltConfig(DBFile))
	if err := dbClient.Open(); err != nil {
		return nil, nil, fmt.Errorf("opening DB client: %s", err)
	}

	cfg := pipeline.NewConfig()
	cfg.Output = Output
	cfg.Request = req
	p := pipeline.New(cfg, newCollector(dbClient), dbClient)
	return pipeline.NewScheduler(p, Schedule), dbClient.Close, nil
}

// schedulerWrapper adapts a pipeline.Scheduler to service.Interface.
type schedulerWrapper struct {
	open func() (*pipeline.Scheduler, func() error, error)

	scheduler *pipeline.Scheduler
	closeFn   func() error
	doneCh    chan struct{}
}

func newSchedulerWrapper(open func() (*pipeline.Scheduler, func() error, error)) *schedulerWrapper {
	w := &schedulerWrapper{
		open: open,
	}
	return w
}

func (w *schedulerWrapper) Start(_ service.Service) error {
	if w.scheduler != nil {
		return pipeline.ErrAlreadyRunning
	}

	s, closeFn, err := w.open()
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		if closeErr := closeFn(); closeErr != nil {
			log.Errorf("Also encountered problem closing DB client: %s", closeErr)
		}
		return err
	}

	w.scheduler = s
	w.closeFn = closeFn
	w.doneCh = make(chan struct{})

	go func(ch <-chan *domain.RunSummary, doneCh chan struct{}) {
		for summary := range ch {
			logRunSummary(summary)
		}
		close(doneCh)
	}(s.Channel(), w.doneCh)

	return nil
}

func (w *schedulerWrapper) Stop(_ service.Service) error {
	if w.scheduler == nil {
		return pipeline.ErrNotRunning
	}

	err := w.scheduler.Stop()
	if err == nil {
		<-w.doneCh
	}
	if closeErr := w.closeFn(); closeErr != nil {
		if err == nil {
			err = fmt.Errorf("closing DB client: %s", closeErr)
		} else {
			log.Errorf("Also encountered problem closing DB client: %s", closeErr)
		}
	}

	w.scheduler = nil
	w.closeFn = nil
	w.doneCh = nil
	return err
}
