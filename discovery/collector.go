package discovery

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/registry"
)

var (
	DefaultConcurrency = 4
	ProgressEvery      = 10
)

// Request describes a single collection sweep.
type Request struct {
	Topics   []string
	MinStars int
	Seeds    []string
}

// NewRequest returns a Request populated with the package defaults.
func NewRequest() Request {
	req := Request{
		Topics:   append([]string{}, DefaultTopics...),
		MinStars: DefaultMinStars,
		Seeds:    append([]string{}, DefaultSeeds...),
	}
	return req
}

// Result is the outcome of a collection sweep.
type Result struct {
	Candidates []*domain.Candidate
	Stats      domain.CollectStats
}

// Collector gathers candidates from a code host topic sweep, enriches them
// against a package index and injects foundational seed packages.
type Collector struct {
	CodeHost    registry.CodeHost
	Index       registry.PackageIndex
	Policy      *registry.BackoffPolicy
	Concurrency int
}

func NewCollector(codeHost registry.CodeHost, index registry.PackageIndex) *Collector {
	c := &Collector{
		CodeHost:    codeHost,
		Index:       index,
		Policy:      registry.DefaultBackoffPolicy(),
		Concurrency: DefaultConcurrency,
	}
	return c
}

// Collect runs the three collection steps in order.  Source failures are
// logged and skipped; only context cancellation aborts the sweep, in which
// case the partial result is returned along with ctx.Err().
func (c *Collector) Collect(ctx context.Context, req Request) (*Result, error) {
	acc := NewAccumulator()

	if err := c.sweep(ctx, req, acc); err != nil {
		return c.result(acc), err
	}
	if err := c.enrich(ctx, acc); err != nil {
		return c.result(acc), err
	}
	if err := c.injectSeeds(ctx, req.Seeds, acc); err != nil {
		return c.result(acc), err
	}

	res := c.result(acc)
	log.WithField("candidates", len(res.Candidates)).
		WithField("topics-searched", res.Stats.TopicsSearched).
		WithField("enriched", res.Stats.Enriched).
		WithField("seeds-added", res.Stats.SeedsAdded).
		Info("Collection finished")
	return res, nil
}

func (c *Collector) result(acc *Accumulator) *Result {
	return &Result{
		Candidates: acc.Candidates(),
		Stats:      acc.Stats,
	}
}

func (c *Collector) policy() *registry.BackoffPolicy {
	if c.Policy == nil {
		return registry.DefaultBackoffPolicy()
	}
	return c.Policy
}

func (c *Collector) sweep(ctx context.Context, req Request, acc *Accumulator) error {
	p := c.policy()

	for _, topic := range req.Topics {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger := log.WithField("topic", topic)
		logger.Debug("Searching code host")

		res, err := c.CodeHost.Search(ctx, topic, req.MinStars, registry.PageCap)

		switch {
		case err == nil:
			acc.Stats.TopicsSearched++
			added := 0
			for _, cand := range res.Candidates {
				if acc.Add(cand) {
					added++
				}
			}
			acc.Stats.CodeHostHits += added
			logger.WithField("total", res.TotalCount).WithField("new", added).Info("Topic searched")

		case ctx.Err() != nil:
			return ctx.Err()

		case registry.IsRateLimited(err):
			acc.Stats.TopicsRateLimited++
			logger.Warnf("Rate limited, waiting %s before the next topic", p.RateLimitPause)
			if err := p.Pause(ctx, p.RateLimitPause); err != nil {
				return err
			}

		default:
			acc.Stats.TopicsFailed++
			logger.Warnf("Search failed, skipping topic: %s", err)
		}

		if err := p.Pause(ctx, p.TopicPause); err != nil {
			return err
		}
	}
	return nil
}

// enrich looks up every code host candidate in the package index.  Each
// goroutine only writes its own candidate.
func (c *Collector) enrich(ctx context.Context, acc *Accumulator) error {
	var targets []*domain.Candidate
	for _, cand := range acc.Candidates() {
		if cand.Origin == domain.OriginCodeHost {
			targets = append(targets, cand)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	var (
		enriched, failed int64
		done             int64
		g, gctx          = errgroup.WithContext(ctx)
	)
	g.SetLimit(c.concurrency())

	for _, cand := range targets {
		cand := cand
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found, err := c.Index.Lookup(gctx, domain.IndexNameGuess(cand.Name))
			switch {
			case err == nil && found != nil:
				cand.HasSecondarySource = true
				cand.IndexURL = found.IndexURL
				atomic.AddInt64(&enriched, 1)
			case gctx.Err() != nil:
				return gctx.Err()
			case err != nil && !registry.IsNotFound(err):
				cand.HasSecondarySource = false
				atomic.AddInt64(&failed, 1)
				log.WithField("candidate", cand.Name).Debugf("Index lookup failed: %s", err)
			default:
				cand.HasSecondarySource = false
			}

			if n := atomic.AddInt64(&done, 1); ProgressEvery > 0 && n%int64(ProgressEvery) == 0 {
				log.Infof("Checked %v/%v candidates against the package index", n, len(targets))
			}
			return nil
		})
	}
	err := g.Wait()

	acc.Stats.EnrichAttempted += int(atomic.LoadInt64(&done))
	acc.Stats.Enriched += int(enriched)
	acc.Stats.EnrichFailed += int(failed)

	if err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Collector) concurrency() int {
	if c.Concurrency <= 0 {
		return 1
	}
	return c.Concurrency
}

// injectSeeds looks up every seed not already known under the loose seed
// comparison and synthesizes a foundation record for those the index has.
func (c *Collector) injectSeeds(ctx context.Context, seeds []string, acc *Accumulator) error {
	known := acc.seedKeys()

	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}

		key := domain.NormalizeSeed(seed)
		if _, ok := known[key]; ok {
			acc.Stats.SeedsKnown++
			continue
		}

		found, err := c.Index.Lookup(ctx, seed)
		if err != nil || found == nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			acc.Stats.SeedsMissing++
			log.WithField("seed", seed).Debugf("Seed not available from package index: %v", err)
			continue
		}

		record := foundationRecord(seed, found)
		if acc.Add(record) {
			acc.Stats.SeedsAdded++
			log.WithField("seed", seed).Info("Added foundation tool")
		}
		known[key] = struct{}{}
	}
	return nil
}

func foundationRecord(seed string, found *domain.Candidate) *domain.Candidate {
	record := *found
	record.Name = seed
	record.FullName = ""
	record.Origin = domain.OriginPackageIndex
	record.Stars = domain.IntPtr(0)
	record.DaysSinceUpdate = domain.IntPtr(30)
	record.Topics = []string{domain.FoundationTopic}
	record.HasSecondarySource = true
	if record.CodeHostURL == "" {
		record.CodeHostURL = CodeHostURL(&record)
	}
	return &record
}
