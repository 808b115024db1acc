// Package render defines the scheduler's output surface and the product
// list layout variants.
package render

import (
	"time"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/scastd/playlist"
)

// Sink receives render commands from the scheduler. Implementations must
// not block; the scheduler runs on a single goroutine.
type Sink interface {
	// ShowLoading displays the initial loading indicator
	ShowLoading()
	// ShowError displays a centered error message
	ShowError(message string)
	// ShowSlide presents a media or product-page frame
	ShowSlide(frame *v1alpha1.Frame)
	// Fade starts an opacity transition; out=true fades to black
	Fade(out bool, duration time.Duration, generation uint64)
}

// LoadingFrame builds the loading indicator frame.
func LoadingFrame() *v1alpha1.Frame {
	return &v1alpha1.Frame{Kind: v1alpha1.FrameKindLoading}
}

// ErrorFrame builds a centered error message frame.
func ErrorFrame(message string) *v1alpha1.Frame {
	return &v1alpha1.Frame{Kind: v1alpha1.FrameKindError, Message: message}
}

// FadeFrame builds an opacity transition frame.
func FadeFrame(out bool, duration time.Duration, generation uint64) *v1alpha1.Frame {
	return &v1alpha1.Frame{
		Kind:       v1alpha1.FrameKindFade,
		Generation: generation,
		Fade: &v1alpha1.FadeFrame{
			Out:            out,
			DurationMillis: int(duration / time.Millisecond),
		},
	}
}

// MediaSlideFrame builds the frame for a media slide. loop is set for a
// video on a single-slide playlist so the renderer restarts it natively
// instead of reporting an end event.
func MediaSlideFrame(slide *playlist.MediaSlide, rotationDegrees int, loop bool, generation uint64) *v1alpha1.Frame {
	return &v1alpha1.Frame{
		Kind:       v1alpha1.FrameKindMedia,
		Generation: generation,
		Media: &v1alpha1.MediaFrame{
			URI:             slide.Source,
			Video:           slide.Video,
			Loop:            loop,
			DisplaySeconds:  slide.DisplaySeconds,
			RotationDegrees: rotationDegrees,
		},
	}
}
