package events

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamkick/jamkick/internal/httputil"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&Config{BaseURL: srv.URL, APIKey: "test-key", PerPage: 50, Timeout: 5 * time.Second}, logrus.New())
}

func TestSearchLocations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations.json", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))

		fmt.Fprint(w, `{"resultsPage":{"results":{"location":[
			{"city":{"displayName":"London"},"metroArea":{"id":24426,"displayName":"London"}},
			{"city":{"displayName":"London"},"metroArea":{"id":24580,"displayName":"Lexington"}}
		]}}}`)
	}))

	results, err := client.SearchLocations(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(24426), results[0].MetroArea.ID)
}

func TestSearchLocationsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"resultsPage":{"results":{}}}`)
	}))

	results, err := client.SearchLocations(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchEvents(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events.json", r.URL.Path)
		assert.Equal(t, "Vampire Weekend", r.URL.Query().Get("artist_name"))
		assert.Equal(t, "sk:24426", r.URL.Query().Get("location"))
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("min_date"))
		assert.Equal(t, "2026-12-01", r.URL.Query().Get("max_date"))

		fmt.Fprint(w, `{"resultsPage":{"results":{"event":[{
			"id":3037536,
			"displayName":"Vampire Weekend at O2 Academy Brixton",
			"type":"Concert",
			"venue":{"id":17522,"displayName":"O2 Academy Brixton","lat":51.4681089,"lng":-0.1187418},
			"location":{"city":"London, UK","lat":51.4681089,"lng":-0.1187418},
			"start":{"date":"2026-09-16","time":"19:30:00","datetime":"2026-09-16T19:30:00+0000"},
			"performance":[{"displayName":"Vampire Weekend","billing":"headline","billingIndex":1,
				"artist":{"id":288696,"displayName":"Vampire Weekend"}}]
		}]}}}`)
	}))

	evs, err := client.SearchEvents(context.Background(), "Vampire Weekend", 24426, "2026-08-01", "2026-12-01")
	require.NoError(t, err)
	require.Len(t, evs, 1)

	ev := evs[0]
	assert.Equal(t, int64(3037536), ev.ID)
	assert.Equal(t, "O2 Academy Brixton", ev.Venue.DisplayName)
	assert.Equal(t, "2026-09-16", ev.Start.Date)
	require.Len(t, ev.Performance, 1)
	assert.Equal(t, "Vampire Weekend", ev.Performance[0].DisplayName)
}

func TestSearchEventsUpstreamFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.SearchEvents(context.Background(), "Caribou", 24426, "2026-08-01", "2026-12-01")

	var upstreamErr *httputil.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusForbidden, upstreamErr.Status)
	assert.Equal(t, "events", upstreamErr.API)
}
