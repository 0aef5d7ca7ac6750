package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
)

var GitHubAPIURL = "https://api.github.com"

// PageCap is the most candidates taken from a single topic query, regardless
// of how many exist server-side.
const PageCap = 30

// CodeHost searches a code hosting service by topic.
type CodeHost interface {
	Search(ctx context.Context, topic string, minStars int, pageSize int) (*SearchResult, error)
}

// SearchResult is one page of topic search results ordered by popularity,
// highest first.
type SearchResult struct {
	TotalCount int
	Candidates []*domain.Candidate
}

type GitHubClient struct {
	BaseURL  string
	Token    string
	Language string
	Client   *http.Client
	Policy   *BackoffPolicy
	Now      func() time.Time
}

func NewGitHubClient(token string) *GitHubClient {
	gh := &GitHubClient{
		BaseURL:  GitHubAPIURL,
		Token:    token,
		Language: "python",
		Client:   newClient(CodeHostTimeout),
		Now:      time.Now,
	}
	return gh
}

// Search queries repositories tagged with topic, sorted by stars.  A 403 or
// 429 response yields ErrRateLimited.
func (gh *GitHubClient) Search(ctx context.Context, topic string, minStars int, pageSize int) (*SearchResult, error) {
	if pageSize <= 0 || pageSize > PageCap {
		pageSize = PageCap
	}

	var (
		u    = gh.searchURL(topic, minStars, pageSize)
		body []byte
	)
	if err := gh.Policy.Retry(ctx, "github search", func() error {
		var err error
		body, err = gh.get(ctx, u)
		return err
	}); err != nil {
		return nil, err
	}

	var resp githubSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transient("github search", 0, errors.Wrap(err, "decoding response"))
	}

	items := resp.Items
	if len(items) > pageSize {
		items = items[:pageSize]
	}
	now := gh.now()
	result := &SearchResult{
		TotalCount: resp.TotalCount,
		Candidates: make([]*domain.Candidate, 0, len(items)),
	}
	for _, item := range items {
		if item.FullName == "" || item.Name == "" {
			log.WithField("topic", topic).Debug("Skipping search item without a name")
			continue
		}
		result.Candidates = append(result.Candidates, item.candidate(now))
	}
	return result, nil
}

func (gh *GitHubClient) searchURL(topic string, minStars int, pageSize int) string {
	q := fmt.Sprintf("topic:%v stars:>%v", topic, minStars)
	if gh.Language != "" {
		q = fmt.Sprintf("topic:%v language:%v stars:>%v", topic, gh.Language, minStars)
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(pageSize))
	return fmt.Sprintf("%v/search/repositories?%v", strings.TrimRight(gh.BaseURL, "/"), params.Encode())
}

func (gh *GitHubClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if gh.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %v", gh.Token))
	}
	log.WithField("url", u).Debug("Fetching page")
	status, body, err := doRequest(gh.client(), req)
	if err != nil {
		return nil, transient("github search", status, err)
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, transient("github search", status, errors.Errorf("body=%.200s", string(body)))
	}
}

func (gh *GitHubClient) client() *http.Client {
	if gh.Client == nil {
		return newClient(CodeHostTimeout)
	}
	return gh.Client
}

func (gh *GitHubClient) now() time.Time {
	if gh.Now == nil {
		return time.Now()
	}
	return gh.Now()
}

type githubSearchResponse struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName        string     `json:"full_name"`
	Name            string     `json:"name"`
	HTMLURL         string     `json:"html_url"`
	Description     *string    `json:"description"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	Language        *string    `json:"language"`
	Topics          []string   `json:"topics"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func (repo githubRepo) candidate(now time.Time) *domain.Candidate {
	c := &domain.Candidate{
		Name:        repo.Name,
		FullName:    repo.FullName,
		Origin:      domain.OriginCodeHost,
		CodeHostURL: repo.HTMLURL,
		Description: repo.Description,
		Stars:       domain.IntPtr(repo.StargazersCount),
		Forks:       domain.IntPtr(repo.ForksCount),
		Topics:      repo.Topics,
		CreatedAt:   repo.CreatedAt,
		UpdatedAt:   repo.UpdatedAt,
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
	if repo.Language != nil {
		c.Language = *repo.Language
	}
	if repo.UpdatedAt != nil {
		c.DaysSinceUpdate = domain.IntPtr(DaysSince(*repo.UpdatedAt, now))
	}
	return c
}

// DaysSince returns the number of whole days elapsed between t and now,
// rounded toward negative infinity.
func DaysSince(t time.Time, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}
