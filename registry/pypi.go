package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/vbagdi/ResearchCode/domain"
)

var (
	PyPIAPIURL     = "https://pypi.org/pypi"
	PyPIProjectURL = "https://pypi.org/project/%v"

	// IndexRate paces package index lookups.
	IndexRate  = rate.Limit(10)
	IndexBurst = 10
)

// PackageIndex looks up a single package by exact name.  A missing package
// yields ErrNotFound.
type PackageIndex interface {
	Lookup(ctx context.Context, name string) (*domain.Candidate, error)
}

type PyPIClient struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
	Policy  *BackoffPolicy
}

func NewPyPIClient() *PyPIClient {
	c := &PyPIClient{
		BaseURL: PyPIAPIURL,
		Client:  newClient(IndexTimeout),
		Limiter: rate.NewLimiter(IndexRate, IndexBurst),
	}
	return c
}

func (pc *PyPIClient) Lookup(ctx context.Context, name string) (*domain.Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	if pc.Limiter != nil {
		if err := pc.Limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "waiting for index rate limiter")
		}
	}

	var (
		u    = fmt.Sprintf("%v/%v/json", strings.TrimRight(pc.BaseURL, "/"), url.PathEscape(name))
		body []byte
	)
	if err := pc.Policy.Retry(ctx, "pypi lookup", func() error {
		var err error
		body, err = pc.get(ctx, u)
		return err
	}); err != nil {
		return nil, err
	}

	var resp pypiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transient("pypi lookup", 0, errors.Wrapf(err, "decoding response for %q", name))
	}
	return resp.Info.candidate(name), nil
}

func (pc *PyPIClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	log.WithField("url", u).Debug("Fetching package metadata")
	c := pc.Client
	if c == nil {
		c = newClient(IndexTimeout)
	}
	status, body, err := doRequest(c, req)
	if err != nil {
		return nil, transient("pypi lookup", status, err)
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, transient("pypi lookup", status, errors.Errorf("body=%.200s", string(body)))
	}
}

type pypiResponse struct {
	Info pypiInfo `json:"info"`
}

type pypiInfo struct {
	Name        string            `json:"name"`
	Summary     *string           `json:"summary"`
	Version     string            `json:"version"`
	Author      string            `json:"author"`
	HomePage    string            `json:"home_page"`
	Keywords    string            `json:"keywords"`
	ProjectURLs map[string]string `json:"project_urls"`
}

// candidate builds the record under the name that was queried, which is the
// spelling the caller knows the package by.
func (info pypiInfo) candidate(name string) *domain.Candidate {
	c := &domain.Candidate{
		Name:        name,
		Origin:      domain.OriginPackageIndex,
		IndexURL:    fmt.Sprintf(PyPIProjectURL, name),
		Description: info.Summary,
		Version:     info.Version,
		Author:      info.Author,
		HomePage:    info.HomePage,
		Keywords:    info.Keywords,
		ProjectURLs: info.ProjectURLs,
		Topics:      []string{},
	}
	if c.Description == nil {
		c.Description = domain.StringPtr("")
	}
	return c
}
