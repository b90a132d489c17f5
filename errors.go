package mdrender

import (
	"errors"

	"github.com/alnah/go-mdrender/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrParse is returned by Render when the Markdown parser fails.
	ErrParse = pipeline.ErrParse

	// Image load errors, reported through ImageLoadState.Err.
	ErrInvalidImageSource = errors.New("invalid image source")
	ErrUnsupportedScheme  = errors.New("unsupported image source scheme")
	ErrImagesDisabled     = errors.New("image loading disabled")
	ErrEmptyImage         = errors.New("image payload is empty")
	ErrImageTooLarge      = errors.New("image payload exceeds size limit")
	ErrFetchStatus        = errors.New("unexpected image fetch status")

	// Layout validation errors.
	ErrInvalidLayout = errors.New("invalid layout metrics")
)
