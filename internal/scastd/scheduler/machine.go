package scheduler

import (
	"time"

	"github.com/slidecast/slidecast/internal/scastd/playlist"
)

// State represents the scheduler's coarse playback state.
type State string

const (
	// StateLoading means no playlist has been loaded yet
	StateLoading State = "LOADING"
	// StatePlaying means a playlist is being cycled
	StatePlaying State = "PLAYING"
	// StateError means no content could ever be loaded; left on the
	// next successful poll
	StateError State = "ERROR"
)

// machine is the pure scheduler state: the playlist, the cursor and the
// cycle generation. It has no timers and no I/O; the run loop drives it.
type machine struct {
	state      State
	playlist   *playlist.Playlist
	current    int
	generation uint64
	lastError  string
	lastFetch  time.Time
}

func newMachine() *machine {
	return &machine{state: StateLoading}
}

// currentSlide returns the visible slide, or nil while no playlist is
// loaded.
func (m *machine) currentSlide() *playlist.Slide {
	if m.playlist.Len() == 0 {
		return nil
	}
	return &m.playlist.Slides[m.current]
}

// advance moves the cursor to the next slide, wrapping after the last
// one. The generation increases even when the index does not change
// (single-slide playlists) so the renderer restarts from a clean state.
// Advancing an empty playlist is a no-op.
func (m *machine) advance() {
	if m.playlist.Len() == 0 {
		return
	}
	m.current = (m.current + 1) % m.playlist.Len()
	m.generation++
}

// applyFetchSuccess installs a freshly fetched playlist. When the feed's
// change token matches the playing playlist the refresh is skipped so an
// unchanged feed never restarts the cycle; otherwise the playlist is
// replaced wholesale, the cursor resets to the first slide and any error
// state clears. Returns true when the visible content changed.
func (m *machine) applyFetchSuccess(pl *playlist.Playlist, now time.Time) bool {
	m.lastFetch = now
	m.lastError = ""

	if m.state == StatePlaying && m.playlist != nil &&
		pl.UpdateToken != "" && pl.UpdateToken == m.playlist.UpdateToken {
		return false
	}

	m.playlist = pl
	m.current = 0
	m.generation++
	m.state = StatePlaying
	return true
}

// applyFetchFailure records a failed poll. With content already playing
// the failure is suppressed and playback continues on the stale
// playlist; with nothing ever loaded the scheduler enters the error
// state. Returns true when the error display must be shown.
func (m *machine) applyFetchFailure(reason string) bool {
	m.lastError = reason
	if m.playlist.Len() > 0 {
		return false
	}
	m.state = StateError
	return true
}
