package usecase

// Option configures optional collaborators of a use case.
type Option func(*options)

type options struct {
	accountCache     AccountCache
	idempotencyCache IdempotencyCache
	metrics          MetricsRecorder
	retrier          Retrier
	clock            Clock
}

// WithAccountCache enables read-through account caching.
func WithAccountCache(c AccountCache) Option {
	return func(o *options) { o.accountCache = c }
}

// WithIdempotencyCache enables the look-aside idempotency record cache.
func WithIdempotencyCache(c IdempotencyCache) Option {
	return func(o *options) { o.idempotencyCache = c }
}

// WithMetrics sets the business metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithRetrier sets the retry policy for storage transactions.
func WithRetrier(r Retrier) Option {
	return func(o *options) { o.retrier = r }
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func buildOptions(opts []Option) options {
	o := options{
		metrics: noopMetrics{},
		retrier: noRetry{},
		clock:   utcNow,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
