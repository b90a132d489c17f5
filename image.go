package mdrender

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ImageFailurePlaceholder is the text drawn in place of an image that could
// not be loaded.
const ImageFailurePlaceholder = "Couldn't load image."

// ImageStatus is the phase of an image load.
type ImageStatus int

const (
	ImageLoading ImageStatus = iota
	ImageSuccess
	ImageFailure
)

func (s ImageStatus) String() string {
	switch s {
	case ImageLoading:
		return "loading"
	case ImageSuccess:
		return "success"
	case ImageFailure:
		return "failure"
	default:
		return fmt.Sprintf("ImageStatus(%d)", int(s))
	}
}

// ImageLoadState is a snapshot of an image load. Data is set on success,
// Err on failure.
type ImageLoadState struct {
	Status ImageStatus
	Data   []byte
	Err    error
}

// ImageLoad tracks the fetch of one image. It starts in ImageLoading and
// moves exactly once to ImageSuccess or ImageFailure; later results are
// ignored.
type ImageLoad struct {
	source string
	done   chan struct{}

	mu     sync.Mutex
	state  ImageLoadState
	cancel context.CancelFunc
}

func newImageLoad(source string) *ImageLoad {
	return &ImageLoad{
		source: source,
		done:   make(chan struct{}),
		state:  ImageLoadState{Status: ImageLoading},
	}
}

// Source returns the image source the load was created for.
func (l *ImageLoad) Source() string {
	return l.source
}

// State returns the current state.
func (l *ImageLoad) State() ImageLoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Done is closed once the load has resolved.
func (l *ImageLoad) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the load resolves or ctx is done.
func (l *ImageLoad) Wait(ctx context.Context) (ImageLoadState, error) {
	select {
	case <-l.done:
		return l.State(), nil
	case <-ctx.Done():
		return l.State(), ctx.Err()
	}
}

// Cancel aborts a pending fetch. The load then resolves to ImageFailure.
// It is a no-op once the load has resolved.
func (l *ImageLoad) Cancel() {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// resolve moves the load to its terminal state. It reports false when the
// load had already resolved.
func (l *ImageLoad) resolve(data []byte, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Status != ImageLoading {
		return false
	}
	if err == nil && len(data) == 0 {
		err = ErrEmptyImage
	}
	if err != nil {
		l.state = ImageLoadState{Status: ImageFailure, Err: err}
	} else {
		l.state = ImageLoadState{Status: ImageSuccess, Data: data}
	}
	l.cancel = nil
	close(l.done)
	return true
}

// Supported image source schemes.
var imageSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
}

// ValidateImageSource checks that source is an absolute URL a Fetcher can
// load. Relative sources must be resolved against the document directory
// before they reach the builder.
func ValidateImageSource(source string) (*url.URL, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidImageSource)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidImageSource, source)
	}

	scheme := strings.ToLower(u.Scheme)
	if !imageSchemes[scheme] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if scheme == "file" && u.Path == "" {
		return nil, fmt.Errorf("%w: %q has no path", ErrInvalidImageSource, source)
	}
	if scheme != "file" && u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidImageSource, source)
	}
	return u, nil
}

// Dispatcher runs image resolution callbacks on the presentation layer's
// own execution context, e.g. a UI event loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatcherFunc) Dispatch(fn func()) {
	f(fn)
}

// inlineDispatcher runs callbacks on the fetching goroutine.
type inlineDispatcher struct{}

func (inlineDispatcher) Dispatch(fn func()) { fn() }

// imageLoader starts image loads for one Builder.
type imageLoader struct {
	enabled    bool
	fetcher    Fetcher
	pool       *FetchPool
	timeout    time.Duration
	dispatcher Dispatcher
	onResolve  func(*ImageLoad)
	logger     Logger
}

// start creates the load for source and begins its fetch. Invalid sources
// and disabled loading resolve to ImageFailure before start returns,
// without touching the fetcher.
func (il *imageLoader) start(ctx context.Context, source string) *ImageLoad {
	load := newImageLoad(source)

	if !il.enabled {
		load.resolve(nil, ErrImagesDisabled)
		return load
	}
	if _, err := ValidateImageSource(source); err != nil {
		il.logger.Warn("image source rejected", "source", source, "error", err)
		load.resolve(nil, err)
		return load
	}

	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if il.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, il.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}
	load.cancel = cancel

	go il.fetch(fetchCtx, cancel, load)
	return load
}

func (il *imageLoader) fetch(ctx context.Context, cancel context.CancelFunc, load *ImageLoad) {
	defer cancel()

	data, err := il.fetchLimited(ctx, load.source)
	if !load.resolve(data, err) {
		return
	}

	state := load.State()
	if state.Status == ImageSuccess {
		il.logger.Debug("image loaded", "source", load.source, "bytes", len(state.Data))
	} else {
		il.logger.Warn("image failed", "source", load.source, "error", state.Err)
	}

	if il.onResolve != nil {
		il.dispatcher.Dispatch(func() { il.onResolve(load) })
	}
}

func (il *imageLoader) fetchLimited(ctx context.Context, source string) (data []byte, err error) {
	release, err := il.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetching %q: internal error: %v", source, r)
		}
	}()

	data, err = il.fetcher.Fetch(ctx, source)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		err = fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return data, err
}
