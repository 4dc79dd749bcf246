package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents() (func(Event), chan Event) {
	ch := make(chan Event, 16)
	return func(ev Event) { ch <- ev }, ch
}

func waitEvent(t *testing.T, ch chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for navigation event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, ch chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected navigation event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherEmitsOncePerDistinctURL(t *testing.T) {
	notify, ch := collectEvents()
	loc := NewMemoryLocation("https://open.spotify.com/")
	hist := loc.History()

	w := NewWatcher(notify)
	w.SetSettleDelay(0)
	w.Install(hist)

	hist.Push("https://open.spotify.com/album/abc123")
	ev := waitEvent(t, ch)
	assert.Equal(t, "https://open.spotify.com/album/abc123", ev.URL)

	// Same URL again: suppressed.
	hist.Push("https://open.spotify.com/album/abc123")
	assertNoEvent(t, ch)

	hist.Push("https://open.spotify.com/album/def456")
	ev = waitEvent(t, ch)
	assert.Equal(t, "https://open.spotify.com/album/def456", ev.URL)
}

func TestWatcherReplaceWithoutChangeIsSuppressed(t *testing.T) {
	notify, ch := collectEvents()
	loc := NewMemoryLocation("https://open.spotify.com/album/abc123")
	hist := loc.History()

	w := NewWatcher(notify)
	w.SetSettleDelay(0)
	w.Install(hist)

	// Replace to the URL the watcher already handled at install time.
	hist.Replace("https://open.spotify.com/album/abc123")
	assertNoEvent(t, ch)

	hist.Replace("https://open.spotify.com/album/xyz789")
	ev := waitEvent(t, ch)
	assert.Equal(t, "https://open.spotify.com/album/xyz789", ev.URL)
}

func TestWatcherPopIsCheckedImmediately(t *testing.T) {
	notify, ch := collectEvents()
	loc := NewMemoryLocation("https://open.spotify.com/album/abc123")
	hist := loc.History()

	w := NewWatcher(notify)
	w.Install(hist)

	// Back/forward changed the location underneath us.
	loc.set("https://open.spotify.com/album/back111")
	w.HandlePop()
	ev := waitEvent(t, ch)
	assert.Equal(t, "https://open.spotify.com/album/back111", ev.URL)

	w.HandlePop()
	assertNoEvent(t, ch)
}

func TestWatcherInstallIsIdempotent(t *testing.T) {
	notify, ch := collectEvents()

	var forwarded []string
	loc := NewMemoryLocation("start")
	hist := loc.History()
	origSet := hist.Push
	hist.Push = func(url string) {
		forwarded = append(forwarded, url)
		origSet(url)
	}

	w := NewWatcher(notify)
	w.SetSettleDelay(0)
	w.Install(hist)
	w.Install(hist)
	w.Install(hist)

	hist.Push("next")
	waitEvent(t, ch)

	// Original entry point invoked exactly once per navigation.
	require.Equal(t, []string{"next"}, forwarded)
	assert.Equal(t, "next", loc.Current())
}

func TestWatcherSettleDelayReadsFinalURL(t *testing.T) {
	notify, ch := collectEvents()
	loc := NewMemoryLocation("start")
	hist := loc.History()

	w := NewWatcher(notify)
	w.SetSettleDelay(20 * time.Millisecond)
	w.Install(hist)

	// The host keeps mutating the route right after push; the settled event
	// carries whatever the URL is once things calm down.
	hist.Push("intermediate")
	loc.set("final")

	ev := waitEvent(t, ch)
	assert.Equal(t, "final", ev.URL)
	assertNoEvent(t, ch)
}

func TestWatcherHandlerPanicDoesNotBreakNavigation(t *testing.T) {
	loc := NewMemoryLocation("start")
	hist := loc.History()

	w := NewWatcher(func(Event) { panic("handler bug") })
	w.SetSettleDelay(0)
	w.Install(hist)

	assert.NotPanics(t, func() {
		hist.Push("next")
	})
	assert.Equal(t, "next", loc.Current())
}

func TestAlbumID(t *testing.T) {
	assert.Equal(t, "4sb0eMpDn3upAFfyi4q2rw", AlbumID("https://open.spotify.com/album/4sb0eMpDn3upAFfyi4q2rw"))
	assert.Equal(t, "abc123", AlbumID("https://open.spotify.com/intl-es/album/abc123?si=x"))
	assert.Equal(t, "", AlbumID("https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M"))
	assert.Equal(t, "", AlbumID("https://open.spotify.com/"))
	assert.Equal(t, "abc", AlbumID("/album/abc"))
}
