package lg

import "go.uber.org/zap"

// VariationSelector picks which of n variations a template renders.
type VariationSelector func(n int) int

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVariationSelector replaces the default selector, which always renders
// the first variation.
func WithVariationSelector(s VariationSelector) Option {
	return func(c *Catalog) {
		if s != nil {
			c.selector = s
		}
	}
}

// WithInlineCacheSize bounds the number of compiled inline references kept
// by the catalog.
func WithInlineCacheSize(size int) Option {
	return func(c *Catalog) {
		if size > 0 {
			c.inlineCacheSize = size
		}
	}
}

func firstVariation(int) int { return 0 }
