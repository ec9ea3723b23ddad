// Package events queries the upstream concert-listing API for metro areas
// and per-artist event listings.
package events

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

// Client searches the upstream location and event endpoints.
type Client struct {
	config *Config
	http   *http.Client
	log    logrus.FieldLogger
}

// NewClient creates an events API client
func NewClient(config *Config, log logrus.FieldLogger) *Client {
	return &Client{
		config: config,
		http:   httputil.NewClient(config.Timeout),
		log:    log.WithField("service", "events"),
	}
}

// SearchLocations returns the ranked metro-area matches for a free-text
// location query. An empty slice means the location is unknown upstream.
func (c *Client) SearchLocations(ctx context.Context, query string) ([]LocationResult, error) {
	var env resultsPage
	if err := c.get(ctx, "locations.json", url.Values{"query": {query}}, &env); err != nil {
		return nil, err
	}

	return env.ResultsPage.Results.Location, nil
}

// SearchEvents returns upcoming events for an artist within a metro area and
// an inclusive date window.
func (c *Client) SearchEvents(ctx context.Context, artist string, areaID int64, minDate, maxDate string) ([]Event, error) {
	params := url.Values{
		"artist_name": {artist},
		"location":    {fmt.Sprintf("sk:%d", areaID)},
		"min_date":    {minDate},
		"max_date":    {maxDate},
	}

	var env resultsPage
	if err := c.get(ctx, "events.json", params, &env); err != nil {
		return nil, err
	}

	evs := env.ResultsPage.Results.Event

	c.log.WithFields(logrus.Fields{
		"artist": artist,
		"area":   areaID,
		"events": len(evs),
	}).Debug("Searched artist events")

	return evs, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("apikey", c.config.APIKey)
	params.Set("per_page", strconv.Itoa(c.config.PerPage))

	requestURL := fmt.Sprintf("%s/%s?%s",
		strings.TrimSuffix(c.config.BaseURL, "/"), endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("events", "error").Inc()
		return &httputil.UpstreamError{API: "events", Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close errors are not actionable

	observability.UpstreamRequests.WithLabelValues("events", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return &httputil.UpstreamError{API: "events", Endpoint: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return nil
}
