// Package scheduler implements the slide-cycling engine: it owns the
// playlist cursor, advances on per-slide completion signals and refreshes
// the playlist from the feed on a fixed cadence.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/pager"
	"github.com/slidecast/slidecast/internal/scastd/playlist"
	"github.com/slidecast/slidecast/internal/scastd/render"
)

// Fetcher supplies playlists. Fetch hits the network; Cached returns the
// best-effort local snapshot for cold starts with the network down.
type Fetcher interface {
	Fetch(ctx context.Context) (*playlist.Playlist, error)
	Cached(ctx context.Context) (*playlist.Playlist, error)
}

// Config holds the scheduler's timing knobs.
type Config struct {
	// PollInterval is how often the playlist is refetched
	PollInterval time.Duration
	// FadeDuration is the opacity transition gating every slide swap
	FadeDuration time.Duration
	// DwellUnit scales the feed's dwell values; one second in
	// production, shortened in tests
	DwellUnit time.Duration
}

func (c *Config) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = 60 * time.Second
	}
	if c.FadeDuration < 0 {
		c.FadeDuration = 0
	}
	if c.DwellUnit <= 0 {
		c.DwellUnit = time.Second
	}
}

// timer firing purposes
type firePurpose int

const (
	fireDwell firePurpose = iota // image dwell elapsed
	fireFade                     // fade-out finished, swap now
	firePage                     // product page dwell elapsed
)

type timerFire struct {
	purpose firePurpose
	// generation the timer was armed for; stale firings are dropped
	generation uint64
	// page is the page whose dwell just elapsed (firePage only)
	page int
}

type fetchResult struct {
	playlist *playlist.Playlist
	err      error
}

// Scheduler drives the slide cycle. All state is owned by the Run loop
// goroutine; external callers only post messages.
type Scheduler struct {
	cfg     Config
	fetcher Fetcher
	sink    render.Sink
	logger  *slog.Logger

	m *machine
	// pg is the active product list pager, nil for media slides
	pg *pager.Pager

	inFlight bool

	fetches  chan fetchResult
	events   chan v1alpha1.RendererEvent
	timers   chan timerFire
	refreshC chan struct{}
	resetC   chan struct{}

	// statusMu guards the published status snapshot; it is written only
	// by the run loop
	statusMu sync.RWMutex
	status   v1alpha1.PlayerStatus
}

// New creates a scheduler. The sink receives every render command; the
// fetcher is polled once at start and every PollInterval thereafter.
func New(cfg Config, fetcher Fetcher, sink render.Sink, logger *slog.Logger) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:      cfg,
		fetcher:  fetcher,
		sink:     sink,
		logger:   logger,
		m:        newMachine(),
		fetches:  make(chan fetchResult, 1),
		events:   make(chan v1alpha1.RendererEvent, 16),
		timers:   make(chan timerFire, 16),
		refreshC: make(chan struct{}, 1),
		resetC:   make(chan struct{}, 1),
		status:   v1alpha1.PlayerStatus{State: v1alpha1.PlayerStateLoading},
	}
}

// Run executes the scheduler loop until ctx is cancelled. It performs an
// immediate fetch, then polls on the configured interval for the whole
// session.
func (s *Scheduler) Run(ctx context.Context) error {
	s.sink.ShowLoading()
	s.startFetch(ctx)

	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			s.startFetch(ctx)
		case <-s.refreshC:
			s.startFetch(ctx)
		case <-s.resetC:
			s.handleReset()
		case res := <-s.fetches:
			s.handleFetchResult(ctx, res)
		case ev := <-s.events:
			s.handleEvent(ev)
		case fire := <-s.timers:
			s.handleTimer(fire)
		}
	}
}

// ReportEvent posts a renderer playback event. It never blocks; if the
// scheduler is flooded the event is dropped, which at worst delays the
// next advance until the feed refreshes.
func (s *Scheduler) ReportEvent(ev v1alpha1.RendererEvent) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("dropping renderer event", "kind", ev.Kind)
	}
}

// Refresh requests an immediate poll, e.g. right after pairing. Dropped
// when a refresh is already pending.
func (s *Scheduler) Refresh() {
	select {
	case s.refreshC <- struct{}{}:
	default:
	}
}

// Reset discards the active playlist, e.g. after unpairing. The display
// returns to the not-paired message until the next successful fetch.
func (s *Scheduler) Reset() {
	select {
	case s.resetC <- struct{}{}:
	default:
	}
}

// Status returns a snapshot of the player state for the control API.
func (s *Scheduler) Status() v1alpha1.PlayerStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// startFetch launches one async fetch. A tick arriving while a fetch is
// outstanding is dropped, not queued: at most one request is ever in
// flight regardless of tick frequency.
func (s *Scheduler) startFetch(ctx context.Context) {
	if s.inFlight {
		return
	}
	s.inFlight = true

	go func() {
		pl, err := s.fetcher.Fetch(ctx)
		select {
		case s.fetches <- fetchResult{playlist: pl, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Scheduler) handleFetchResult(ctx context.Context, res fetchResult) {
	s.inFlight = false

	if res.err != nil {
		s.handleFetchFailure(ctx, res.err)
		return
	}

	if changed := s.m.applyFetchSuccess(res.playlist, time.Now()); changed {
		// Content changed mid-playback: the visible slide jumps to the
		// new playlist's first entry without a transition.
		s.presentCurrent()
	}
	s.publishStatus()
}

func (s *Scheduler) handleFetchFailure(ctx context.Context, err error) {
	reason := userMessage(err)

	// A cold start with the network down may still have last session's
	// playlist on disk; stale content beats a blank screen.
	if s.m.playlist.Len() == 0 && !errors.IsIdentityMissing(err) {
		if cached, cacheErr := s.fetcher.Cached(ctx); cacheErr == nil && cached.Usable() {
			s.logger.Warn("fetch failed, playing cached playlist",
				"error", err, "slides", cached.Len())
			s.m.applyFetchSuccess(cached, time.Time{})
			s.m.lastError = reason
			s.presentCurrent()
			s.publishStatus()
			return
		}
	}

	if showError := s.m.applyFetchFailure(reason); showError {
		s.logger.Error("fetch failed with no content loaded", "error", err)
		s.sink.ShowError(reason)
	} else {
		s.logger.Warn("fetch failed, continuing with current playlist", "error", err)
	}
	s.publishStatus()
}

func (s *Scheduler) handleReset() {
	gen := s.m.generation
	s.m = newMachine()
	// The generation keeps counting so timers armed before the reset
	// stay stale.
	s.m.generation = gen + 1
	s.pg = nil
	s.sink.ShowError("Device is not paired. Enter a link code to begin.")
	s.publishStatus()
}

func (s *Scheduler) handleEvent(ev v1alpha1.RendererEvent) {
	// Events for a superseded slide activation are stale; acting on
	// them would advance the wrong slide.
	if ev.Generation != s.m.generation {
		return
	}

	slide := s.m.currentSlide()
	if slide == nil {
		return
	}

	switch ev.Kind {
	case v1alpha1.EventMediaLoaded:
		// The image dwell starts only once the asset is on screen,
		// independent of how long fetch and decode took.
		if slide.Kind == playlist.KindMedia && !slide.Media.Video {
			s.schedule(s.dwell(slide.Media.DisplaySeconds), timerFire{
				purpose:    fireDwell,
				generation: s.m.generation,
			})
		}
	case v1alpha1.EventVideoEnded:
		if slide.Kind == playlist.KindMedia && slide.Media.Video && s.m.playlist.Len() > 1 {
			s.beginAdvance()
		}
		// A single-slide video loops natively; its end events are
		// ignored.
	case v1alpha1.EventVideoFailed:
		if slide.Kind == playlist.KindMedia && slide.Media.Video {
			s.beginAdvance()
		}
	}
}

func (s *Scheduler) handleTimer(fire timerFire) {
	if fire.generation != s.m.generation {
		return
	}

	switch fire.purpose {
	case fireDwell:
		s.beginAdvance()
	case fireFade:
		s.completeAdvance()
	case firePage:
		s.handlePageElapsed(fire.page)
	}
}

func (s *Scheduler) handlePageElapsed(completed int) {
	if s.pg == nil {
		return
	}
	if s.pg.Last(completed) {
		// The final page has had its full dwell; the sub-cycle
		// completes exactly once.
		s.beginAdvance()
		return
	}

	next := completed + 1
	s.showProductPage(next)
	s.schedule(s.dwell(s.pg.PageSeconds()), timerFire{
		purpose:    firePage,
		generation: s.m.generation,
		page:       next,
	})
}

// beginAdvance starts the transition to the next slide: fade out first,
// swap when the fade timer fires. The index change is not observable
// until the fade-out has completed.
func (s *Scheduler) beginAdvance() {
	if s.m.playlist.Len() == 0 {
		return
	}
	if s.cfg.FadeDuration == 0 {
		s.completeAdvance()
		return
	}
	s.sink.Fade(true, s.cfg.FadeDuration, s.m.generation)
	s.schedule(s.cfg.FadeDuration, timerFire{
		purpose:    fireFade,
		generation: s.m.generation,
	})
}

func (s *Scheduler) completeAdvance() {
	s.m.advance()
	s.presentCurrent()
	if s.cfg.FadeDuration > 0 {
		s.sink.Fade(false, s.cfg.FadeDuration, s.m.generation)
	}
	s.publishStatus()
}

// presentCurrent activates the current slide: it builds the frame, hands
// it to the sink and arms the slide's own completion trigger. Arming
// happens under a fresh generation, so timers and events belonging to
// the previous slide are dead on arrival.
func (s *Scheduler) presentCurrent() {
	slide := s.m.currentSlide()
	if slide == nil {
		return
	}
	s.pg = nil

	rotation := s.m.playlist.RotationDegrees()

	switch slide.Kind {
	case playlist.KindMedia:
		loop := slide.Media.Video && s.m.playlist.Len() == 1
		s.sink.ShowSlide(render.MediaSlideFrame(slide.Media, rotation, loop, s.m.generation))
		// Image dwell is armed on the media_loaded event; video
		// completion comes from the player's end-of-stream report.
	case playlist.KindProductList:
		pl := slide.ProductList
		s.pg = pager.New(pl.Products, pl.Customization.Pagination, pl.PageSeconds)
		s.showProductPage(0)
		s.schedule(s.dwell(s.pg.PageSeconds()), timerFire{
			purpose:    firePage,
			generation: s.m.generation,
			page:       0,
		})
	}
}

func (s *Scheduler) showProductPage(page int) {
	slide := s.m.currentSlide()
	if slide == nil || slide.Kind != playlist.KindProductList || s.pg == nil {
		return
	}
	variant := render.ForPagination(s.pg.Pagination())
	frame := variant.RenderPage(slide.ProductList, s.pg, page,
		s.m.playlist.RotationDegrees(), s.m.generation)
	s.sink.ShowSlide(frame)
}

// schedule arms a one-shot timer posting back into the run loop. The
// firing carries the generation it was armed for; handleTimer discards
// anything stale, so a timer can never advance a slide it wasn't armed
// on.
func (s *Scheduler) schedule(d time.Duration, fire timerFire) {
	time.AfterFunc(d, func() {
		select {
		case s.timers <- fire:
		default:
		}
	})
}

func (s *Scheduler) dwell(units int) time.Duration {
	if units <= 0 {
		units = 1
	}
	return time.Duration(units) * s.cfg.DwellUnit
}

func (s *Scheduler) publishStatus() {
	st := v1alpha1.PlayerStatus{
		State:        v1alpha1.PlayerState(s.m.state),
		SlideCount:   s.m.playlist.Len(),
		CurrentSlide: s.m.current,
		Generation:   s.m.generation,
		LastError:    s.m.lastError,
		LastFetch:    s.m.lastFetch,
	}

	s.statusMu.Lock()
	s.status = st
	s.statusMu.Unlock()
}

// userMessage reduces a fetch error to the single line shown on screen.
func userMessage(err error) string {
	switch {
	case errors.IsIdentityMissing(err):
		return "Device is not paired. Enter a link code to begin."
	case errors.IsEmptyContent(err):
		return "No content is available for this device."
	case errors.IsMalformedResponse(err):
		return "The content service returned an unreadable response."
	case errors.IsNetwork(err):
		return "Could not reach the content service."
	default:
		return "Could not update content."
	}
}
