package v1alpha1

import "time"

// PlayerState describes the scheduler's externally visible state.
type PlayerState string

const (
	// PlayerStateUnpaired means no device identity is stored
	PlayerStateUnpaired PlayerState = "UNPAIRED"
	// PlayerStateLoading means a playlist has not been loaded yet
	PlayerStateLoading PlayerState = "LOADING"
	// PlayerStatePlaying means a playlist is being cycled
	PlayerStatePlaying PlayerState = "PLAYING"
	// PlayerStateError means no content could ever be loaded
	PlayerStateError PlayerState = "ERROR"
)

// PlayerStatus is the response of the control API status endpoint.
type PlayerStatus struct {
	State PlayerState `json:"state"`
	// Paired reports whether a device identity is stored
	Paired bool `json:"paired"`
	// SlideCount is the length of the active playlist
	SlideCount int `json:"slide_count"`
	// CurrentSlide is the index of the visible slide
	CurrentSlide int `json:"current_slide"`
	// Generation increases on every slide activation
	Generation uint64 `json:"generation"`
	// LastError is the most recent fetch failure, if any
	LastError string `json:"last_error,omitempty"`
	// LastFetch is when the playlist was last fetched successfully
	LastFetch time.Time `json:"last_fetch,omitempty"`
}

// PairRequest submits a human-entered link code to the player.
type PairRequest struct {
	Code string `json:"code"`
}

// Frame kinds sent to the renderer front-end.
const (
	FrameKindLoading  = "loading"
	FrameKindError    = "error"
	FrameKindMedia    = "media"
	FrameKindProducts = "products"
	FrameKindFade     = "fade"
)

// Frame is one render command sent over the renderer WebSocket. Exactly
// one of the payload fields matching Kind is populated.
type Frame struct {
	Kind string `json:"kind"`
	// Generation identifies which slide activation this frame belongs
	// to; renderer events must echo it back
	Generation uint64         `json:"generation"`
	Media      *MediaFrame    `json:"media,omitempty"`
	Products   *ProductFrame  `json:"products,omitempty"`
	Fade       *FadeFrame     `json:"fade,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// MediaFrame instructs the renderer to show a single image or video.
type MediaFrame struct {
	// URI is a local file path or remote URL
	URI string `json:"uri"`
	// Video selects the video surface instead of the image surface
	Video bool `json:"video"`
	// Loop makes a video restart natively on end instead of reporting
	// a video_ended event
	Loop bool `json:"loop"`
	// DisplaySeconds is informational; the player owns the dwell timer
	DisplaySeconds int `json:"display_seconds,omitempty"`
	// RotationDegrees is 0, 90 or -90 depending on orientation
	RotationDegrees int `json:"rotation_degrees,omitempty"`
}

// ProductFrame instructs the renderer to show one page of a product list.
type ProductFrame struct {
	Title      string        `json:"title"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	// Columns and Rows describe the grid of the selected layout variant
	Columns int           `json:"columns"`
	Rows    int           `json:"rows"`
	Cells   []ProductCell `json:"cells"`
	Style   PageStyle     `json:"style"`
}

// ProductCell is one slot of a product page. Padding slots have Empty set
// and render blank.
type ProductCell struct {
	Empty       bool   `json:"empty,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	// OfferPrice present means Price renders struck through
	OfferPrice string `json:"offer_price,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// PageStyle carries the resolved presentation settings for a product page.
type PageStyle struct {
	BackgroundType     string `json:"background_type"`
	PrimaryColor       string `json:"primary_color"`
	SecondaryColor     string `json:"secondary_color,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
	FontFamily         string `json:"font_family"`
	TitleBoxColor      string `json:"title_box_color"`
	TitleTextColor     string `json:"title_text_color"`
	ProductTextColor   string `json:"product_text_color"`
	ProductBoxColor    string `json:"product_box_color"`
	PriceTextColor     string `json:"price_text_color"`
	AccentColor        string `json:"accent_color"`
	RotationDegrees    int    `json:"rotation_degrees,omitempty"`
}

// FadeFrame instructs the renderer to run an opacity transition. The
// player holds the slide swap until the fade-out duration has elapsed.
type FadeFrame struct {
	// Out is true for fade-to-black, false for fade-in
	Out bool `json:"out"`
	// DurationMillis is the transition length in milliseconds
	DurationMillis int `json:"duration_millis"`
}

// Renderer event kinds reported back by the front-end.
const (
	EventMediaLoaded = "media_loaded"
	EventVideoEnded  = "video_ended"
	EventVideoFailed = "video_failed"
)

// RendererEvent is a playback report from the renderer front-end.
type RendererEvent struct {
	Kind string `json:"kind"`
	// Generation must echo the Frame the event refers to; events for a
	// superseded generation are discarded
	Generation uint64 `json:"generation"`
}

// Error is the control API's error response body.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
