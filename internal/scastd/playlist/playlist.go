// Package playlist implements the slide playlist domain model
package playlist

import (
	"strings"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
)

// Kind discriminates the slide variants
type Kind string

const (
	// KindMedia is a single full-screen image or video
	KindMedia Kind = "MEDIA"
	// KindProductList is a paginated product list
	KindProductList Kind = "PRODUCT_LIST"
)

// Orientation describes how the physical screen is mounted
type Orientation string

const (
	// OrientationHorizontal is the default landscape layout
	OrientationHorizontal Orientation = "horizontal"
	// OrientationVertical rotates the layout 90 degrees for a portrait
	// screen mounted on landscape hardware
	OrientationVertical Orientation = "vertical"
)

// RotationDirection selects which way a vertical layout rotates
type RotationDirection string

const (
	RotationLeft  RotationDirection = "left"
	RotationRight RotationDirection = "right"
)

// Slide is a tagged union: exactly one of Media or ProductList is set,
// matching Kind.
type Slide struct {
	Kind        Kind
	Media       *MediaSlide
	ProductList *ProductListSlide
}

// MediaSlide is a static image or a video occupying the whole screen.
type MediaSlide struct {
	// Source is a local cached-file path or a remote URL
	Source string
	// Video is true when Source plays on the video surface
	Video bool
	// DisplaySeconds is the image dwell time; ignored for videos
	DisplaySeconds int
}

// ProductListSlide carries all products of one list; pagination and page
// grouping are resolved by the renderer, not here.
type ProductListSlide struct {
	Title         string
	Products      []v1alpha1.Product
	Customization v1alpha1.Customization
	// PageSeconds is the dwell time per rendered page
	PageSeconds int
}

// Playlist is an ordered slide sequence. It is rebuilt wholesale on every
// successful fetch and never mutated in place.
type Playlist struct {
	Slides            []Slide
	Orientation       Orientation
	RotationDirection RotationDirection
	// UpdateToken is the server-side change token of the fetch that
	// produced this playlist
	UpdateToken string
	// Business and DeviceName describe the owning account
	Business   string
	DeviceName string
}

// Len returns the number of slides.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Slides)
}

// Usable reports whether the playlist holds at least one displayable slide.
// A fetch producing an unusable playlist is treated as a failure.
func (p *Playlist) Usable() bool {
	for i := range p.Slides {
		if p.Slides[i].Usable() {
			return true
		}
	}
	return false
}

// Usable reports whether a slide can be displayed: media slides need a
// source, product lists need at least one product.
func (s *Slide) Usable() bool {
	switch s.Kind {
	case KindMedia:
		return s.Media != nil && s.Media.Source != ""
	case KindProductList:
		return s.ProductList != nil && len(s.ProductList.Products) > 0
	default:
		return false
	}
}

// RotationDegrees resolves the renderer rotation for this playlist's
// orientation: 0 for horizontal, +90 or -90 for vertical.
func (p *Playlist) RotationDegrees() int {
	if p.Orientation != OrientationVertical {
		return 0
	}
	if p.RotationDirection == RotationLeft {
		return -90
	}
	return 90
}

// ParseOrientation normalizes the feed's orientation field, defaulting
// to horizontal for unrecognized values.
func ParseOrientation(s string) Orientation {
	if strings.EqualFold(s, string(OrientationVertical)) {
		return OrientationVertical
	}
	return OrientationHorizontal
}

// ParseRotationDirection normalizes the feed's rotation field, defaulting
// to right.
func ParseRotationDirection(s string) RotationDirection {
	if strings.EqualFold(s, string(RotationLeft)) {
		return RotationLeft
	}
	return RotationRight
}

// IsVideoSource reports whether a media URL or path plays on the video
// surface. The upstream feed only ever serves mp4 video.
func IsVideoSource(source string) bool {
	return strings.Contains(strings.ToLower(source), ".mp4")
}
