package engine

// Default configuration values.
const (
	DefaultMaxHistory = 1000
)

// Option configures a Session during creation.
type Option func(*Session)

// WithSink forwards every successful decision to the given persistence
// sink.
func WithSink(sink StatusSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithPersistErrorHandler installs a callback for failed persistence
// calls. Persistence is best-effort; the callback is informational and
// never affects session state.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Session) {
		s.onPersistError = fn
	}
}

// WithMaxHistory caps the number of decisions kept for undo.
func WithMaxHistory(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.maxHistory = max
		}
	}
}
