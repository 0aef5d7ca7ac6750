// Package pipeline wires collection, deduplication, scoring, categorization
// and persistence into a single discovery run.
package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/discovery"
	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/quality"
	"github.com/vbagdi/ResearchCode/report"
	"github.com/vbagdi/ResearchCode/workflow"
)

// SummaryTopN is how many leading tool names a run summary keeps.
var SummaryTopN = 10

// Collector is satisfied by *discovery.Collector.
type Collector interface {
	Collect(ctx context.Context, req discovery.Request) (*discovery.Result, error)
}

// Archive records completed runs.  Satisfied by *db.Client.
type Archive interface {
	RunSave(summary *domain.RunSummary) error
}

type Config struct {
	Output  string
	Request discovery.Request
}

func NewConfig() Config {
	cfg := Config{
		Output:  report.DefaultOutput,
		Request: discovery.NewRequest(),
	}
	return cfg
}

type Pipeline struct {
	Config    Config
	Collector Collector
	Archive   Archive // Optional.

	Now func() time.Time
}

func New(cfg Config, collector Collector, archive Archive) *Pipeline {
	p := &Pipeline{
		Config:    cfg,
		Collector: collector,
		Archive:   archive,
	}
	return p
}

// Run performs one full discovery run and writes the artifact.  Partial
// collection failures never prevent the artifact from being written; only
// cancellation or a persistence failure aborts.
func (p *Pipeline) Run(ctx context.Context) (*report.Artifact, error) {
	var (
		req     = p.Config.Request
		started = p.now()
		meta    = report.NewMetadata(req.Topics, req.Seeds)
		summary = &domain.RunSummary{
			RunID:     meta.RunID,
			StartedAt: started,
			Output:    p.Config.Output,
		}
	)
	meta.MinStars = req.MinStars

	logger := log.WithField("run-id", meta.RunID)
	logger.WithField("topics", len(req.Topics)).WithField("seeds", len(req.Seeds)).Info("Starting discovery run")

	res, err := p.Collector.Collect(ctx, req)
	if ctx.Err() != nil {
		err = errors.Wrap(ctx.Err(), "collection aborted")
		p.archive(summary, nil, err)
		return nil, err
	}
	if err != nil {
		logger.Warnf("Collection finished with errors, continuing with partial results: %s", err)
	}
	if res == nil {
		res = &discovery.Result{}
	}

	tools := discovery.Dedupe(res.Candidates)
	logger.WithField("collected", len(res.Candidates)).WithField("unique", len(tools)).Info("Deduplicated candidates")

	quality.ScoreAll(tools)
	report.SortByScore(tools)
	workflows := workflow.Categorize(tools)

	stats := res.Stats
	meta.Stats = &stats
	artifact := report.Build(tools, workflows, meta)

	if err := report.Write(p.Config.Output, artifact); err != nil {
		err = errors.Wrap(err, "writing artifact")
		p.archive(summary, nil, err)
		return nil, err
	}

	p.archive(summary, artifact, nil)
	logger.WithField("tools", len(artifact.Tools)).WithField("duration", summary.Duration()).Info("Discovery run complete")
	return artifact, nil
}

// Summarize condenses an artifact into a run summary.
func Summarize(summary *domain.RunSummary, artifact *report.Artifact) *domain.RunSummary {
	if artifact == nil {
		return summary
	}
	summary.TotalTools = len(artifact.Tools)
	summary.Workflows = artifact.Workflows.Workflows().Counts()
	if artifact.Metadata != nil && artifact.Metadata.Stats != nil {
		summary.Stats = *artifact.Metadata.Stats
	}
	n := SummaryTopN
	if n > len(artifact.Tools) {
		n = len(artifact.Tools)
	}
	summary.TopTools = make([]string, n)
	for i, tool := range artifact.Tools[:n] {
		summary.TopTools[i] = tool.Name
	}
	return summary
}

func (p *Pipeline) archive(summary *domain.RunSummary, artifact *report.Artifact, runErr error) {
	summary.FinishedAt = p.now()
	Summarize(summary, artifact)
	if runErr != nil {
		summary.Err = runErr.Error()
	}
	if p.Archive == nil {
		return
	}
	if err := p.Archive.RunSave(summary); err != nil {
		log.WithField("run-id", summary.RunID).Errorf("Archiving run summary failed: %s", err)
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
