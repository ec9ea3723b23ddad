// Package aggregator drives the fetch-aggregate-cache pipeline that joins a
// user's listening history with concert listings for a location.
package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jamkick/jamkick/pkg/cache"
	"github.com/jamkick/jamkick/pkg/events"
	"github.com/jamkick/jamkick/pkg/history"
	"github.com/jamkick/jamkick/pkg/observability"
)

const dateLayout = "2006-01-02"

// UnknownLocationError is returned when the location search has no results.
type UnknownLocationError struct {
	Location string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("%q is not a known location", e.Location)
}

// HistorySource fetches a user's listening feeds.
type HistorySource interface {
	FetchFeed(ctx context.Context, username string, feed history.Feed) ([]history.Entry, error)
}

// EventSource resolves locations and searches per-artist events.
type EventSource interface {
	SearchLocations(ctx context.Context, query string) ([]events.LocationResult, error)
	SearchEvents(ctx context.Context, artist string, areaID int64, minDate, maxDate string) ([]events.Event, error)
}

// Service defines the public interface for the aggregator
type Service interface {
	// Aggregate resolves the location, fetches the user's history, and
	// returns upcoming events for the user's artists grouped by date. A nil
	// pageNum processes every artist in one shot; otherwise artists are
	// processed up to pageNum pages deep and Done reports whether the full
	// set was covered.
	Aggregate(ctx context.Context, username, location string, pageNum *int) (*Result, error)
}

type service struct {
	log     logrus.FieldLogger
	config  *Config
	cache   *cache.Cache
	history HistorySource
	events  EventSource
	now     func() time.Time
}

// NewService creates a new aggregator service
func NewService(config *Config, cacheGateway *cache.Cache, historySource HistorySource, eventSource EventSource, log logrus.FieldLogger) Service {
	return &service{
		log:     log.WithField("service", "aggregator"),
		config:  config,
		cache:   cacheGateway,
		history: historySource,
		events:  eventSource,
		now:     time.Now,
	}
}

func (s *service) Aggregate(ctx context.Context, username, location string, pageNum *int) (*Result, error) {
	start := time.Now()

	var (
		entries []history.Entry
		areaID  int64
	)

	// History and location resolution are independent.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		entries, err = s.fetchHistory(gctx, username)

		return err
	})

	g.Go(func() error {
		var err error
		areaID, err = s.resolveLocation(gctx, location)

		return err
	})

	if err := g.Wait(); err != nil {
		observability.AggregateRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	artists, done := s.pageArtists(distinctArtists(entries), pageNum)

	evs, err := s.fetchEvents(ctx, artists, areaID)
	if err != nil {
		observability.AggregateRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	// The join runs against the full history, not the paged artist slice.
	matched := attachJams(evs, entries)

	observability.AggregateRequests.WithLabelValues("ok").Inc()
	observability.AggregateDuration.Observe(time.Since(start).Seconds())

	s.log.WithFields(logrus.Fields{
		"username": username,
		"location": location,
		"artists":  len(artists),
		"events":   len(evs),
		"done":     done,
	}).Debug("Aggregated shows")

	return &Result{Groups: groupByDate(matched), Done: done}, nil
}

// fetchHistory returns the user's primary feed followed by the favorites
// feed. Feed order matters downstream: the fuzzy join gives the first entry
// per artist precedence.
func (s *service) fetchHistory(ctx context.Context, username string) ([]history.Entry, error) {
	jams, err := cache.Cached(ctx, s.cache, cache.Key(cache.KeyJams, username), s.config.HistoryTTL,
		func(ctx context.Context) ([]history.Entry, error) {
			return s.history.FetchFeed(ctx, username, history.FeedJams)
		})
	if err != nil {
		return nil, err
	}

	likes, err := cache.Cached(ctx, s.cache, cache.Key(cache.KeyLikes, username), s.config.HistoryTTL,
		func(ctx context.Context) ([]history.Entry, error) {
			return s.history.FetchFeed(ctx, username, history.FeedLikes)
		})
	if err != nil {
		return nil, err
	}

	return append(jams, likes...), nil
}

// resolveLocation maps a free-text location to a metro-area ID, taking the
// first ranked search hit. The mapping is treated as permanent, so the cache
// entry never expires.
func (s *service) resolveLocation(ctx context.Context, location string) (int64, error) {
	return cache.Cached(ctx, s.cache, cache.Key(cache.KeyLocation, location), 0,
		func(ctx context.Context) (int64, error) {
			results, err := s.events.SearchLocations(ctx, location)
			if err != nil {
				return 0, err
			}

			if len(results) == 0 {
				return 0, &UnknownLocationError{Location: location}
			}

			return results[0].MetroArea.ID, nil
		})
}

// distinctArtists returns the distinct non-empty artist names across the
// history, sorted case-sensitively so paging stays stable between calls.
func distinctArtists(entries []history.Entry) []string {
	seen := make(map[string]struct{}, len(entries))

	var artists []string

	for _, e := range entries {
		if e.Artist == "" {
			continue
		}

		if _, ok := seen[e.Artist]; ok {
			continue
		}

		seen[e.Artist] = struct{}{}
		artists = append(artists, e.Artist)
	}

	sort.Strings(artists)

	return artists
}

// pageArtists truncates the sorted artist list to the requested page window.
// A nil page means everything in one shot.
func (s *service) pageArtists(artists []string, pageNum *int) (paged []string, done bool) {
	if pageNum == nil {
		return artists, true
	}

	limit := *pageNum * s.config.PerPage
	if limit < 0 {
		limit = 0
	}

	if limit >= len(artists) {
		return artists, true
	}

	return artists[:limit], false
}

// fetchEvents retrieves events for each artist and concatenates them in
// artist order regardless of fetch completion order. Any single fetch
// failure fails the whole request.
func (s *service) fetchEvents(ctx context.Context, artists []string, areaID int64) ([]events.Event, error) {
	minDate, maxDate := s.window()

	perArtist := make([][]events.Event, len(artists))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FetchConcurrency)

	for i, artist := range artists {
		g.Go(func() error {
			evs, err := cache.Cached(gctx, s.cache,
				cache.Key(cache.KeyArtistEvents, artist, areaID, maxDate), s.config.EventsTTL,
				func(ctx context.Context) ([]events.Event, error) {
					return s.events.SearchEvents(ctx, artist, areaID, minDate, maxDate)
				})
			if err != nil {
				return err
			}

			perArtist[i] = evs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The cache key excludes minDate, so a hit can carry a window anchored
	// to an earlier month. Events already in the past are dropped here on
	// every read; this filter is what keeps stale windows invisible.
	today := s.now().Format(dateLayout)

	var all []events.Event

	for _, evs := range perArtist {
		for _, ev := range evs {
			if ev.Start.Date < today {
				continue
			}

			all = append(all, ev)
		}
	}

	return all, nil
}

// window returns the event search window: the first day of the current
// month through the first day of the month WindowMonths ahead.
func (s *service) window() (minDate, maxDate string) {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return first.Format(dateLayout), first.AddDate(0, s.config.WindowMonths, 0).Format(dateLayout)
}
