package history

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

	return NewClient(&Config{BaseURL: srv.URL, APIKey: "test-key", Timeout: 5 * time.Second}, logrus.New())
}

func TestFetchFeedFollowsHasMore(t *testing.T) {
	pages := map[string]string{
		"1": `{"list":{"hasMore":true},"entries":[{"artist":"Bon Iver","title":"Holocene"},{"artist":"Tame Impala","title":"Let It Happen"}]}`,
		"2": `{"list":{"hasMore":true},"entries":[{"artist":"Caribou","title":"Odessa"}]}`,
		"3": `{"list":{"hasMore":false},"entries":[{"artist":"Four Tet","title":"Two Thousand and Seventeen"}]}`,
	}

	var requestedPages []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alice/jams.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		pageNum := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, pageNum)

		body, ok := pages[pageNum]
		require.True(t, ok, "unexpected page %s", pageNum)
		fmt.Fprint(w, body)
	}))

	entries, err := client.FetchFeed(context.Background(), "alice", FeedJams)
	require.NoError(t, err)

	// Pages are fetched in order and stop exactly when hasMore goes false.
	assert.Equal(t, []string{"1", "2", "3"}, requestedPages)

	artists := make([]string, 0, len(entries))
	for _, e := range entries {
		artists = append(artists, e.Artist)
	}
	assert.Equal(t, []string{"Bon Iver", "Tame Impala", "Caribou", "Four Tet"}, artists)
}

func TestFetchFeedUnknownUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchFeed(context.Background(), "nobody", FeedJams)

	var unknownUser *UnknownUserError
	require.ErrorAs(t, err, &unknownUser)
	assert.Equal(t, "nobody", unknownUser.Username)
}

func TestFetchFeedUpstreamFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.FetchFeed(context.Background(), "alice", FeedLikes)

	var upstreamErr *httputil.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.Status)
}

func TestFetchFeedSelectsFeedEndpoint(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alice/likes.json", r.URL.Path)
		fmt.Fprint(w, `{"list":{"hasMore":false},"entries":[]}`)
	}))

	entries, err := client.FetchFeed(context.Background(), "alice", FeedLikes)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
