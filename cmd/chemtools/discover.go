package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbagdi/ResearchCode/db"
	"github.com/vbagdi/ResearchCode/discovery"
	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/pipeline"
	"github.com/vbagdi/ResearchCode/registry"
	"github.com/vbagdi/ResearchCode/report"
)

var (
	Output      = report.DefaultOutput
	Topics      = append([]string{}, discovery.DefaultTopics...)
	Seeds       = append([]string{}, discovery.DefaultSeeds...)
	TopicsFile  string
	SeedsFile   string
	MinStars    = discovery.DefaultMinStars
	GitHubToken = os.Getenv("GITHUB_TOKEN")
	Concurrency = discovery.DefaultConcurrency
	MaxRetries  int
	Schedule    string
	CacheTTL    = 24 * time.Hour
	NoCache     bool
	TopN        = report.DefaultTopN
)

func newDiscoverCmd() *cobra.Command {
	discoverCmd := &cobra.Command{
		Use:     "discover",
		Aliases: []string{"disc", "d"},
		Short:   "Run the discovery pipeline",
		Long:    "Searches code host topics, enriches against the package index, injects foundation packages, then scores, categorizes and writes the artifact",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if MemoryProfiler {
				log.Debug("Starting memory profiler")
				p := profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
				defer func() {
					log.Debug("Stopping memory profiler")
					p.Stop()
				}()
			}

			req, err := discoverRequest()
			if err != nil {
				log.Fatalf("main: %s", err)
			}

			if err := db.WithClient(db.NewBoltConfig(DBFile), func(dbClient *db.Client) error {
				cfg := pipeline.NewConfig()
				cfg.Output = Output
				cfg.Request = req
				p := pipeline.New(cfg, newCollector(dbClient), dbClient)

				if Schedule != "" {
					return runScheduled(p)
				}
				return runOnce(p)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	addPipelineFlags(discoverCmd)
	discoverCmd.Flags().IntVarP(&TopN, "top", "n", TopN, "Number of top ranked tools to print")
	discoverCmd.Flags().BoolVarP(&MemoryProfiler, "memory-profiler", "", MemoryProfiler, "Enable the memory profiler; creates a mem.pprof file while the application is shutting down")

	return discoverCmd
}

// addPipelineFlags registers the flags shared by every command which runs the
// discovery pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&Output, "output", "o", Output, "Artifact output path")
	cmd.Flags().StringSliceVarP(&Topics, "topic", "t", Topics, "Code host topics to search")
	cmd.Flags().StringSliceVarP(&Seeds, "seed", "s", Seeds, "Foundation packages to inject from the package index")
	cmd.Flags().StringVarP(&TopicsFile, "topics-file", "", TopicsFile, "Read topics from a newline delimited or JSON file (overrides --topic)")
	cmd.Flags().StringVarP(&SeedsFile, "seeds-file", "", SeedsFile, "Read seeds from a newline delimited or JSON file (overrides --seed)")
	cmd.Flags().StringVarP(&discovery.InputFormat, "list-format", "", discovery.InputFormat, "Format of topics/seeds files without a .json extension: text or json")
	cmd.Flags().IntVarP(&MinStars, "min-stars", "m", MinStars, "Minimum star count for code host results")
	cmd.Flags().StringVarP(&GitHubToken, "github-token", "", GitHubToken, "GitHub API token (defaults to $GITHUB_TOKEN)")
	cmd.Flags().IntVarP(&Concurrency, "concurrency", "c", Concurrency, "Concurrent package index lookups during enrichment")
	cmd.Flags().IntVarP(&MaxRetries, "max-retries", "r", MaxRetries, "Retries for transient registry failures (0 disables)")
	cmd.Flags().DurationVarP(&registry.DefaultRateLimitPause, "rate-limit-pause", "", registry.DefaultRateLimitPause, "Pause after a code host rate limit response")
	cmd.Flags().DurationVarP(&registry.DefaultTopicPause, "topic-pause", "", registry.DefaultTopicPause, "Pause after each topic query")
	cmd.Flags().StringVarP(&Schedule, "schedule", "", Schedule, "Cron schedule (with seconds field) for repeated runs; empty runs once")
	cmd.Flags().DurationVarP(&CacheTTL, "cache-ttl", "", CacheTTL, "Package index lookup cache lifetime (0 never expires)")
	cmd.Flags().BoolVarP(&NoCache, "no-cache", "", NoCache, "Disable the package index lookup cache")
}

func discoverRequest() (discovery.Request, error) {
	req := discovery.Request{
		Topics:   Topics,
		MinStars: MinStars,
		Seeds:    Seeds,
	}
	if TopicsFile != "" {
		topics, err := discovery.ReadListFile(TopicsFile)
		if err != nil {
			return req, fmt.Errorf("reading topics file %q: %s", TopicsFile, err)
		}
		req.Topics = topics
	}
	if SeedsFile != "" {
		seeds, err := discovery.ReadListFile(SeedsFile)
		if err != nil {
			return req, fmt.Errorf("reading seeds file %q: %s", SeedsFile, err)
		}
		req.Seeds = seeds
	}
	return req, nil
}

func newCollector(dbClient *db.Client) *discovery.Collector {
	policy := registry.DefaultBackoffPolicy()
	policy.MaxRetries = MaxRetries

	gh := registry.NewGitHubClient(GitHubToken)
	gh.Policy = policy

	pypi := registry.NewPyPIClient()
	pypi.Policy = policy

	var index registry.PackageIndex = pypi
	if !NoCache {
		index = registry.NewCachedIndex(pypi, dbClient, CacheTTL)
	}

	c := discovery.NewCollector(gh, index)
	c.Policy = policy
	c.Concurrency = Concurrency
	return c
}

func runOnce(p *pipeline.Pipeline) error {
	ctx, cancel := signalContext()
	defer cancel()

	artifact, err := p.Run(ctx)
	if err != nil {
		return err
	}
	printArtifactSummary(artifact)
	return nil
}

func runScheduled(p *pipeline.Pipeline) error {
	s := pipeline.NewScheduler(p, Schedule)
	if err := s.Start(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	ch := s.Channel()
	for {
		select {
		case summary := <-ch:
			logRunSummary(summary)
		case <-ctx.Done():
			return s.Stop()
		}
	}
}

func printArtifactSummary(artifact *report.Artifact) {
	if Quiet {
		return
	}
	fmt.Printf("\nDiscovered %v tools\n\n", len(artifact.Tools))
	report.PrintTop(os.Stdout, artifact.Tools, TopN)
	fmt.Println("\nWorkflows:")
	for _, b := range artifact.Workflows.Workflows() {
		fmt.Printf("  %-22s %v tools\n", b.Name, len(b.Tools))
	}
	fmt.Printf("\nSaved to %v\n", Output)
}

func logRunSummary(summary *domain.RunSummary) {
	logger := log.WithField("run-id", summary.RunID).WithField("duration", summary.Duration())
	if summary.Err != "" {
		logger.Errorf("Run failed: %v", summary.Err)
		return
	}
	logger.WithField("tools", summary.TotalTools).WithField("top", summary.TopTools).Info("Run finished")
}
