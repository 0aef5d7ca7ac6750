package registry

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

var (
	UserAgent = "ChemTools_Discovery_Bot/1.0 (+https://github.com/vbagdi/ResearchCode)"

	CodeHostTimeout = 10 * time.Second
	IndexTimeout    = 5 * time.Second

	// MaxBodyBytes bounds how much of a response body is read.
	MaxBodyBytes int64 = 16 << 20
)

func newRequest(ctx context.Context, method string, u string, body io.Reader) (*http.Request, error) {
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}

func newClient(timeout time.Duration) *http.Client {
	c := &http.Client{
		Timeout: timeout,
	}
	return c
}

// doRequest performs the request and returns the status code alongside the
// body.  Only connection-level failures produce an error.
func doRequest(c *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
