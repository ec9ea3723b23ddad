// Package history fetches a user's listening history from the upstream feed
// API, one page at a time.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jamkick/jamkick/internal/httputil"
	"github.com/jamkick/jamkick/pkg/observability"
)

// Feed identifies one of the two history feeds exposed per user.
type Feed string

const (
	// FeedJams is the user's primary listening feed.
	FeedJams Feed = "jams"
	// FeedLikes is the user's favorited-entries feed.
	FeedLikes Feed = "likes"
)

// Entry is a single listening-history record.
type Entry struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	ViaURL string `json:"viaUrl,omitempty"`
}

// UnknownUserError is returned when the upstream reports the user does not exist.
type UnknownUserError struct {
	Username string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("%q is not a known username", e.Username)
}

// page mirrors the upstream page envelope.
type page struct {
	List struct {
		HasMore bool `json:"hasMore"`
	} `json:"list"`
	Entries []Entry `json:"entries"`
}

// Client fetches paginated history feeds.
type Client struct {
	config *Config
	http   *http.Client
	log    logrus.FieldLogger
}

// NewClient creates a history API client
func NewClient(config *Config, log logrus.FieldLogger) *Client {
	return &Client{
		config: config,
		http:   httputil.NewClient(config.Timeout),
		log:    log.WithField("service", "history"),
	}
}

// FetchFeed retrieves every page of the given feed for username,
// concatenated in arrival order. Pages are numbered from 1 and fetched until
// the upstream hasMore flag goes false.
func (c *Client) FetchFeed(ctx context.Context, username string, feed Feed) ([]Entry, error) {
	var entries []Entry

	for pageNum, hasMore := 1, true; hasMore; pageNum++ {
		p, err := c.fetchPage(ctx, username, feed, pageNum)
		if err != nil {
			return nil, err
		}

		entries = append(entries, p.Entries...)
		hasMore = p.List.HasMore
	}

	c.log.WithFields(logrus.Fields{
		"username": username,
		"feed":     feed,
		"entries":  len(entries),
	}).Debug("Fetched history feed")

	return entries, nil
}

func (c *Client) fetchPage(ctx context.Context, username string, feed Feed, pageNum int) (*page, error) {
	endpoint := fmt.Sprintf("%s/%s/%s.json",
		strings.TrimSuffix(c.config.BaseURL, "/"), url.PathEscape(username), feed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("key", c.config.APIKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("history", "error").Inc()
		return nil, &httputil.UpstreamError{API: "history", Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close errors are not actionable

	observability.UpstreamRequests.WithLabelValues("history", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &UnknownUserError{Username: username}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httputil.UpstreamError{API: "history", Endpoint: endpoint, Status: resp.StatusCode}
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode %s page %d: %w", feed, pageNum, err)
	}

	return &p, nil
}
