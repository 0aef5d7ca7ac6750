package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func githubItemsJSON(n int) string {
	items := make([]string, n)
	for i := 0; i < n; i++ {
		items[i] = fmt.Sprintf(`{"full_name":"owner/repo%[1]v","name":"repo%[1]v","html_url":"https://github.com/owner/repo%[1]v","description":"molecule tool %[1]v","stargazers_count":%[2]v,"forks_count":3,"language":"Python","topics":["cheminformatics"],"created_at":"2020-01-01T00:00:00Z","updated_at":"2024-06-01T00:00:00Z"}`, i, 1000-i)
	}
	return fmt.Sprintf(`{"total_count":%v,"incomplete_results":false,"items":[%v]}`, n*10, strings.Join(items, ","))
}

func TestGitHubSearch(t *testing.T) {
	var gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		if expected, actual := "stars", r.URL.Query().Get("sort"); actual != expected {
			t.Errorf("Expected sort=%v but actual=%v", expected, actual)
		}
		fmt.Fprint(w, githubItemsJSON(35))
	}))
	defer server.Close()

	gh := NewGitHubClient("secret")
	gh.BaseURL = server.URL
	gh.Now = func() time.Time { return time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC) }

	res, err := gh.Search(context.Background(), "cheminformatics", 10, 100)
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := "topic:cheminformatics language:python stars:>10", gotQuery; actual != expected {
		t.Errorf("Expected q=%q but actual=%q", expected, actual)
	}
	if expected, actual := "token secret", gotAuth; actual != expected {
		t.Errorf("Expected Authorization=%q but actual=%q", expected, actual)
	}
	if expected, actual := 350, res.TotalCount; actual != expected {
		t.Errorf("Expected TotalCount=%v but actual=%v", expected, actual)
	}
	if expected, actual := PageCap, len(res.Candidates); actual != expected {
		t.Fatalf("Expected len(candidates)=%v but actual=%v", expected, actual)
	}

	first := res.Candidates[0]
	if expected, actual := "repo0", first.Name; actual != expected {
		t.Errorf("Expected first name=%v but actual=%v", expected, actual)
	}
	if expected, actual := "owner/repo0", first.FullName; actual != expected {
		t.Errorf("Expected first full name=%v but actual=%v", expected, actual)
	}
	if first.Stars == nil || *first.Stars != 1000 {
		t.Errorf("Expected first stars=1000 but actual=%v", first.Stars)
	}
	if first.DaysSinceUpdate == nil || *first.DaysSinceUpdate != 10 {
		t.Errorf("Expected days since update=10 but actual=%v", first.DaysSinceUpdate)
	}
	if expected, actual := "Python", first.Language; actual != expected {
		t.Errorf("Expected language=%v but actual=%v", expected, actual)
	}
	if first.HasSecondarySource {
		t.Errorf("Expected fresh search result to have no secondary source")
	}
}

func TestGitHubSearchOutcomes(t *testing.T) {
	testCases := []struct {
		status      int
		body        string
		rateLimited bool
		transient   bool
	}{
		{status: http.StatusForbidden, body: `{"message":"API rate limit exceeded"}`, rateLimited: true},
		{status: http.StatusTooManyRequests, body: `{}`, rateLimited: true},
		{status: http.StatusInternalServerError, body: `oops`, transient: true},
		{status: http.StatusUnprocessableEntity, body: `{}`, transient: true},
		{status: http.StatusOK, body: `{"items": [`, transient: true},
	}
	for i, testCase := range testCases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(testCase.status)
			fmt.Fprint(w, testCase.body)
		}))

		gh := NewGitHubClient("")
		gh.BaseURL = server.URL
		_, err := gh.Search(context.Background(), "x", 0, 30)
		server.Close()

		if err == nil {
			t.Errorf("[i=%v] Expected error but got nil", i)
			continue
		}
		if expected, actual := testCase.rateLimited, IsRateLimited(err); actual != expected {
			t.Errorf("[i=%v] Expected IsRateLimited=%v but actual=%v (err=%s)", i, expected, actual, err)
		}
		if expected, actual := testCase.transient, IsTransient(err); actual != expected {
			t.Errorf("[i=%v] Expected IsTransient=%v but actual=%v (err=%s)", i, expected, actual, err)
		}
	}
}

func TestGitHubSearchNullFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"items":[{"full_name":"a/b","name":"b","html_url":"https://github.com/a/b","description":null,"stargazers_count":12,"forks_count":0,"language":null,"topics":null}]}`)
	}))
	defer server.Close()

	gh := NewGitHubClient("")
	gh.BaseURL = server.URL
	res, err := gh.Search(context.Background(), "x", 0, 30)
	if err != nil {
		t.Fatal(err)
	}
	c := res.Candidates[0]
	if c.Description != nil {
		t.Errorf("Expected nil description but actual=%q", *c.Description)
	}
	if c.DaysSinceUpdate != nil {
		t.Errorf("Expected unknown recency but actual=%v", *c.DaysSinceUpdate)
	}
	if c.Topics == nil {
		t.Errorf("Expected non-nil topics")
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		t        time.Time
		expected int
	}{
		{t: now, expected: 0},
		{t: now.Add(-23 * time.Hour), expected: 0},
		{t: now.Add(-49 * time.Hour), expected: 2},
		{t: now.Add(time.Hour), expected: -1},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.expected, DaysSince(testCase.t, now); actual != expected {
			t.Errorf("[i=%v] Expected DaysSince=%v but actual=%v", i, expected, actual)
		}
	}
}
