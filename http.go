package waitfor

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxDrainBytes = 4096

// StatusSet is the set of HTTP status codes that satisfy the raw check.
type StatusSet map[int]struct{}

func newStatusSet(codes ...int) (StatusSet, error) {
	if len(codes) == 0 {
		codes = []int{http.StatusOK}
	}

	set := make(StatusSet, len(codes))
	for _, code := range codes {
		if code < 100 || code > 599 {
			return nil, fmt.Errorf("http condition: invalid status code %d", code)
		}
		set[code] = struct{}{}
	}
	return set, nil
}

func (s StatusSet) Contains(code int) bool {
	_, ok := s[code]
	return ok
}

func (s StatusSet) String() string {
	codes := make([]int, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return strings.Join(parts, ",")
}

// HTTPCondition is met while a GET to URL completes within Timeout with a
// status in Expected. A transport failure (no response at all) counts the
// same as a non-matching status.
type HTTPCondition struct {
	URL      string
	Expected StatusSet
	Timeout  time.Duration
	not      bool
}

// HTTP returns a condition met while a GET to rawurl returns one of the
// given statuses; with no statuses given, 200 is expected. The URL and
// status codes are validated here.
func HTTP(rawurl string, not bool, statuses ...int) (*HTTPCondition, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("http condition: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("http condition: unsupported scheme %q in %q", u.Scheme, rawurl)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("http condition: missing host in %q", rawurl)
	}

	expected, err := newStatusSet(statuses...)
	if err != nil {
		return nil, err
	}

	return &HTTPCondition{
		URL:      u.String(),
		Expected: expected,
		Timeout:  DefaultProbeTimeout,
		not:      not,
	}, nil
}

func (c *HTTPCondition) Met() bool {
	client := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   c.Timeout,
	}

	raw := false
	resp, err := client.Get(c.URL)
	if err == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		resp.Body.Close()
		raw = c.Expected.Contains(resp.StatusCode)
	}

	return raw != c.not
}

func (c *HTTPCondition) String() string {
	if c.not {
		return fmt.Sprintf("GET %s not returning %s", c.URL, c.Expected)
	}
	return fmt.Sprintf("GET %s returning %s", c.URL, c.Expected)
}
