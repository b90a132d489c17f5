package mdrender

import (
	"sync"
	"time"

	"github.com/alnah/go-mdrender/internal/pipeline"
)

// Logger receives diagnostic messages as a message and key/value pairs.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
func (nopLogger) Warn(any, ...any)  {}

// Option configures a Builder or a Renderer.
type Option func(*options)

// options holds internal configuration shared by Builder and Renderer.
type options struct {
	layout       Layout
	highlight    bool
	images       bool
	fetcher      Fetcher
	pool         *FetchPool
	fetchTimeout time.Duration
	dispatcher   Dispatcher
	onImage      func(*ImageLoad)
	logger       Logger

	preprocessor pipeline.Preprocessor
	parser       pipeline.Parser
}

// sharedPool bounds fetches across every builder that was not given its
// own pool.
var sharedPool = sync.OnceValue(func() *FetchPool {
	return NewFetchPool(ResolvePoolSize(0))
})

func newOptions(opts []Option) *options {
	o := &options{
		layout:       DefaultLayout(),
		highlight:    true,
		images:       true,
		fetchTimeout: DefaultFetchTimeout,
		dispatcher:   inlineDispatcher{},
		logger:       nopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.fetcher == nil {
		o.fetcher = NewHTTPFetcher()
	}
	if o.pool == nil {
		o.pool = sharedPool()
	}
	if o.preprocessor == nil {
		o.preprocessor = &pipeline.TextPreprocessor{}
	}
	if o.parser == nil {
		o.parser = pipeline.NewGoldmarkParser()
	}
	return o
}

// WithLayout sets the spacing metrics.
// Panics if a metric is negative (programmer error).
func WithLayout(l Layout) Option {
	if err := l.Validate(); err != nil {
		panic("mdrender: WithLayout: " + err.Error())
	}
	return func(o *options) {
		o.layout = l
	}
}

// WithHighlighting enables or disables code block tokenization.
func WithHighlighting(enabled bool) Option {
	return func(o *options) {
		o.highlight = enabled
	}
}

// WithImages enables or disables image fetching. When disabled, every image
// slot resolves to ImageFailure with ErrImagesDisabled.
func WithImages(enabled bool) Option {
	return func(o *options) {
		o.images = enabled
	}
}

// WithFetcher sets the image byte source. A nil fetcher keeps the default.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithFetchPool bounds image fetches with p instead of the process-wide pool.
func WithFetchPool(p *FetchPool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithFetchTimeout limits each image fetch. Zero disables the limit.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("mdrender: WithFetchTimeout duration must not be negative")
	}
	return func(o *options) {
		o.fetchTimeout = d
	}
}

// WithDispatcher sets where image resolution callbacks run.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.dispatcher = d
		}
	}
}

// WithImageListener registers fn to be called, through the Dispatcher, each
// time an image load resolves after its fetch. Loads that fail before any
// fetch is started are already resolved when Build returns and are not
// announced.
func WithImageListener(fn func(*ImageLoad)) Option {
	return func(o *options) {
		o.onImage = fn
	}
}

// WithLogger sets the diagnostic logger. Default is silent.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// withParser replaces the Markdown parser (for testing).
func withParser(p pipeline.Parser) Option {
	return func(o *options) {
		o.parser = p
	}
}
