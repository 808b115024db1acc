// Package feed fetches the remote advertisement feed and normalizes it
// into the player's slide playlist.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/identity"
	"github.com/slidecast/slidecast/internal/scastd/playlist"
	"github.com/slidecast/slidecast/internal/scastd/store"
)

// DefaultImageSeconds is the image dwell used when the feed omits one.
const DefaultImageSeconds = 5

// AssetFetcher resolves a remote media URL to a local cached path.
type AssetFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Client fetches and normalizes the advertisement feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   *identity.Manager
	assets     AssetFetcher
	store      store.Store
	logger     *slog.Logger

	// now is swappable for tests; it feeds the cache-busting query param
	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAssets enables opportunistic local caching of media assets. Without
// it slides reference the remote URL directly.
func WithAssets(assets AssetFetcher) Option {
	return func(c *Client) {
		c.assets = assets
	}
}

// WithSnapshotStore enables best-effort persistence of the last good
// playlist.
func WithSnapshotStore(s store.Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// NewClient creates a feed client. baseURL is the remote API root, e.g.
// "https://panel.example.com/api/tv".
func NewClient(baseURL string, ids *identity.Manager, logger *slog.Logger, options ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		identity: ids,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Fetch retrieves the feed for the paired device and returns the
// normalized playlist. Every failure maps onto the fetch taxonomy:
// identity missing, network, malformed response, or empty content.
func (c *Client) Fetch(ctx context.Context) (*playlist.Playlist, error) {
	token, err := c.identity.Token(ctx)
	if err != nil {
		return nil, err
	}

	list, err := c.get(ctx, token)
	if err != nil {
		return nil, err
	}

	pl := c.normalize(ctx, list)
	if !pl.Usable() {
		return nil, fmt.Errorf("%w: feed held no displayable slides", errors.ErrEmptyContent)
	}

	c.saveSnapshot(ctx, pl)
	return pl, nil
}

func (c *Client) get(ctx context.Context, token string) (*v1alpha1.AdvertisementList, error) {
	// The upstream panel sits behind HTTP caches; a timestamp query
	// param forces a fresh response every poll.
	url := fmt.Sprintf("%s/advertisements/%s?t=%s",
		c.baseURL, token, strconv.FormatInt(c.now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: feed returned status %d", errors.ErrNetwork, resp.StatusCode)
	}

	var list v1alpha1.AdvertisementList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decoding feed: %v", errors.ErrMalformedResponse, err)
	}
	return &list, nil
}

// normalize expands the heterogeneous ad entries into slides. Unusable
// entries (media items that cannot be resolved, product lists with no
// products) are dropped here so the scheduler only ever sees displayable
// slides.
func (c *Client) normalize(ctx context.Context, list *v1alpha1.AdvertisementList) *playlist.Playlist {
	pl := &playlist.Playlist{
		Orientation:       playlist.ParseOrientation(list.Orientation),
		RotationDirection: playlist.ParseRotationDirection(list.RotationDirection),
		UpdateToken:       list.LastUpdate,
		Business:          list.Business,
		DeviceName:        list.DeviceName,
	}

	for _, ad := range list.Advertisements {
		switch ad.Type {
		case v1alpha1.AdTypeMultimedia:
			pl.Slides = append(pl.Slides, c.normalizeMultimedia(ctx, ad)...)
		case v1alpha1.AdTypeProductList:
			if slide, ok := c.normalizeProductList(ad); ok {
				pl.Slides = append(pl.Slides, slide)
			}
		default:
			c.logger.Warn("skipping advertisement of unknown type", "type", ad.Type)
		}
	}
	return pl
}

// normalizeMultimedia expands one Multimedia entry into one media slide
// per asset, caching each asset locally when a cache is configured. A
// failed download skips that one item, never the whole fetch.
func (c *Client) normalizeMultimedia(ctx context.Context, ad v1alpha1.Advertisement) []playlist.Slide {
	var data v1alpha1.MultimediaData
	if err := json.Unmarshal(ad.Data, &data); err != nil {
		c.logger.Warn("skipping malformed multimedia entry", "error", err)
		return nil
	}

	seconds := data.ImageSeconds
	if seconds <= 0 {
		seconds = DefaultImageSeconds
	}

	var slides []playlist.Slide
	for _, item := range data.Media {
		remote := item.Data
		if remote == "" {
			c.logger.Warn("skipping media item with no URL")
			continue
		}

		source := remote
		if c.assets != nil {
			local, err := c.assets.Fetch(ctx, remote)
			if err != nil {
				c.logger.Warn("skipping media item after download failure",
					"url", remote, "error", err)
				continue
			}
			source = local
		}

		slides = append(slides, playlist.Slide{
			Kind: playlist.KindMedia,
			Media: &playlist.MediaSlide{
				Source:         source,
				Video:          playlist.IsVideoSource(remote),
				DisplaySeconds: seconds,
			},
		})
	}
	return slides
}

// normalizeProductList builds exactly one product list slide carrying the
// products and customization verbatim; pagination is resolved later by
// the renderer.
func (c *Client) normalizeProductList(ad v1alpha1.Advertisement) (playlist.Slide, bool) {
	var data v1alpha1.ProductListData
	if err := json.Unmarshal(ad.Data, &data); err != nil {
		c.logger.Warn("skipping malformed product list entry", "error", err)
		return playlist.Slide{}, false
	}
	if len(data.Products) == 0 {
		c.logger.Warn("skipping product list with no products", "title", ad.Title)
		return playlist.Slide{}, false
	}

	pageSeconds := data.Customization.PageSeconds
	if pageSeconds <= 0 {
		pageSeconds = 10
	}

	return playlist.Slide{
		Kind: playlist.KindProductList,
		ProductList: &playlist.ProductListSlide{
			Title:         ad.Title,
			Products:      data.Products,
			Customization: data.Customization,
			PageSeconds:   pageSeconds,
		},
	}, true
}

// saveSnapshot persists the playlist for best-effort reuse after a cold
// start with the network down. Failures are logged, never surfaced.
func (c *Client) saveSnapshot(ctx context.Context, pl *playlist.Playlist) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(pl)
	if err != nil {
		c.logger.Warn("failed to encode playlist snapshot", "error", err)
		return
	}
	err = c.store.SaveSnapshot(ctx, &store.Snapshot{
		Token:   pl.UpdateToken,
		Data:    data,
		SavedAt: time.Now(),
	})
	if err != nil {
		c.logger.Warn("failed to save playlist snapshot", "error", err)
	}
}

// Cached returns the last persisted playlist, if any. Callers treat it
// strictly as a fallback for a cold start with no network.
func (c *Client) Cached(ctx context.Context) (*playlist.Playlist, error) {
	if c.store == nil {
		return nil, errors.ErrNotFound
	}
	snap, err := c.store.GetSnapshot(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	var pl playlist.Playlist
	if err := json.Unmarshal(snap.Data, &pl); err != nil {
		return nil, fmt.Errorf("decoding playlist snapshot: %w", err)
	}
	return &pl, nil
}
