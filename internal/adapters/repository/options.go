package repository

// Option applies a configuration option to the SampleStore.
type Option func(*SampleStore)

// WithQueryMetrics toggles latency recording for Range and At.
func WithQueryMetrics(enabled bool) Option {
	return func(s *SampleStore) {
		s.recordMetrics = enabled
	}
}
