package discovery

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
	"github.com/vbagdi/ResearchCode/registry"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Verbose() {
		log.SetLevel(log.DebugLevel)
	}
	os.Exit(m.Run())
}

type topicResponse struct {
	repos []*domain.Candidate
	err   error
}

type fakeCodeHost struct {
	responses map[string]topicResponse
	searched  []string
	mu        sync.Mutex
}

func (f *fakeCodeHost) Search(ctx context.Context, topic string, minStars int, pageSize int) (*registry.SearchResult, error) {
	f.mu.Lock()
	f.searched = append(f.searched, topic)
	f.mu.Unlock()

	resp := f.responses[topic]
	if resp.err != nil {
		return nil, resp.err
	}
	res := &registry.SearchResult{TotalCount: len(resp.repos)}
	for _, repo := range resp.repos {
		cp := *repo
		res.Candidates = append(res.Candidates, &cp)
	}
	return res, nil
}

type fakeIndex struct {
	known  map[string]string // name -> description
	errs   map[string]error
	looked []string
	mu     sync.Mutex
}

func (f *fakeIndex) Lookup(ctx context.Context, name string) (*domain.Candidate, error) {
	f.mu.Lock()
	f.looked = append(f.looked, name)
	f.mu.Unlock()

	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	desc, ok := f.known[name]
	if !ok {
		return nil, registry.ErrNotFound
	}
	c := &domain.Candidate{
		Name:        name,
		Origin:      domain.OriginPackageIndex,
		IndexURL:    "https://pypi.org/project/" + name,
		Description: domain.StringPtr(desc),
		Topics:      []string{},
	}
	return c, nil
}

func (f *fakeIndex) Looked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.looked...)
}

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

func repo(owner string, name string, stars int) *domain.Candidate {
	c := &domain.Candidate{
		Name:            name,
		FullName:        owner + "/" + name,
		Origin:          domain.OriginCodeHost,
		CodeHostURL:     "https://github.com/" + owner + "/" + name,
		Description:     domain.StringPtr(name + " toolkit"),
		Stars:           domain.IntPtr(stars),
		DaysSinceUpdate: domain.IntPtr(10),
		Topics:          []string{"cheminformatics"},
	}
	return c
}

func newTestCollector(host registry.CodeHost, index registry.PackageIndex) (*Collector, *sleepRecorder) {
	sr := &sleepRecorder{}
	policy := registry.DefaultBackoffPolicy()
	policy.Sleep = sr.Sleep
	c := NewCollector(host, index)
	c.Policy = policy
	return c, sr
}

func names(cs []*domain.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
