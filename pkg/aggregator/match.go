package aggregator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jamkick/jamkick/pkg/events"
	"github.com/jamkick/jamkick/pkg/history"
)

// Jam is the listening entry attached to a matched event, with a derived
// media link.
type Jam struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// Event is an upstream event annotated with the matching listening entry,
// when one exists.
type Event struct {
	events.Event
	Jam *Jam `json:"jam,omitempty"`
}

// mediaHosts are the hosts whose via links are used verbatim. Anything else
// falls back to a search link.
//
//nolint:gochecknoglobals // Fixed allow-list
var mediaHosts = map[string]struct{}{
	"youtube.com":      {},
	"youtu.be":         {},
	"vimeo.com":        {},
	"soundcloud.com":   {},
	"bandcamp.com":     {},
	"spotify.com":      {},
	"open.spotify.com": {},
}

const searchTemplate = "https://www.google.com/search?q=%s"

// artistKey normalizes an artist display name into the fuzzy join key:
// lowercased with all whitespace removed. "Vampire Weekend" and
// "VampireWeekend" collide, which is accepted.
func artistKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// attachJams annotates each event with a representative listening entry for
// its headline performer. The first entry per artist key wins, so primary
// feed entries take precedence over likes.
func attachJams(evs []events.Event, entries []history.Entry) []Event {
	byKey := make(map[string]*Jam, len(entries))

	for _, entry := range entries {
		key := artistKey(entry.Artist)
		if key == "" {
			continue
		}

		if _, ok := byKey[key]; ok {
			continue
		}

		byKey[key] = &Jam{
			Artist: entry.Artist,
			Title:  entry.Title,
			Link:   mediaLink(entry),
		}
	}

	annotated := make([]Event, 0, len(evs))

	for _, ev := range evs {
		out := Event{Event: ev}
		if len(ev.Performance) > 0 {
			out.Jam = byKey[artistKey(ev.Performance[0].DisplayName)]
		}

		annotated = append(annotated, out)
	}

	return annotated
}

// mediaLink returns the entry's via URL when it points at a known media
// host, otherwise a search link for "<artist> - <title>".
func mediaLink(entry history.Entry) string {
	if entry.ViaURL != "" {
		if u, err := url.Parse(entry.ViaURL); err == nil {
			host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
			if _, ok := mediaHosts[host]; ok {
				return entry.ViaURL
			}
		}
	}

	return fmt.Sprintf(searchTemplate, url.QueryEscape(entry.Artist+" - "+entry.Title))
}
