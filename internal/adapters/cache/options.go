package cache

// Option applies a configuration option to the Memo.
type Option func(*Memo)

// WithLimit bounds the number of entries. Zero disables storage; loads still
// collapse concurrent callers.
func WithLimit(n int) Option {
	return func(m *Memo) {
		if n >= 0 {
			m.limit = n
		}
	}
}

// WithMetrics toggles hit, miss and eviction counters.
func WithMetrics(enabled bool) Option {
	return func(m *Memo) {
		m.recordMetrics = enabled
	}
}
