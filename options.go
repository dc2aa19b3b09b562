package ribbon

import "fmt"

// WidthFunc maps the normalized position t in [0, 1] along a polyline to a
// width multiplier. It must be a pure function of t: it is evaluated once per
// point on every full rebuild and its results are assumed stable across
// incremental updates.
type WidthFunc func(t float32) float32

// Option configures a Batch during Build.
//
// Example:
//
//	b, err := ribbon.Build(lines,
//	    ribbon.WithClosed(true),
//	    ribbon.WithWidthFunc(func(t float32) float32 { return 1 - t }),
//	    ribbon.WithUV(false),
//	)
type Option func(*Config)

// Config is the immutable configuration of a Batch. It is assembled once
// per Build from the defaults and the given options, validated, and reused
// unchanged by every later rebuild of the batch.
type Config struct {
	// Closed closes every polyline.
	Closed bool

	// ClosedLines closes individual polylines by index. When non-nil its
	// length must match the number of polylines given to Build or Rebuild.
	// After SetPositions changes the line count, lines without an entry are
	// open and surplus entries are ignored.
	ClosedLines []bool

	// Width is the default width function for polylines without their own.
	Width WidthFunc

	// NeedsUV allocates the uv attribute.
	NeedsUV bool

	// NeedsWidth allocates the width attribute.
	NeedsWidth bool

	// NeedsCounter allocates the counter attribute.
	NeedsCounter bool

	// NeedsPrevious allocates the previous attribute. Disable it together
	// with NeedsNext when positions are evaluated procedurally by the consumer.
	NeedsPrevious bool

	// NeedsNext allocates the next attribute.
	NeedsNext bool

	// InstanceCount sizes the per-instance attribute namespace. Zero disables it.
	InstanceCount int

	// FallbackHook is called whenever SetPositions falls back to a full
	// rebuild. The error wraps ErrTopologyMismatch or
	// ErrIndexWidthExceeded.
	FallbackHook func(reason error)
}

// defaultConfig returns the configuration used when no options are given:
// every attribute allocated, open polylines, width 1, no instances.
func defaultConfig() Config {
	return Config{
		NeedsUV:       true,
		NeedsWidth:    true,
		NeedsCounter:  true,
		NeedsPrevious: true,
		NeedsNext:     true,
	}
}

// newConfig applies opts over the defaults.
func newConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ClosedLines != nil {
		cfg.ClosedLines = append([]bool(nil), cfg.ClosedLines...)
	}
	return cfg
}

// validate checks cfg against the polylines it will build.
func (c *Config) validate(lineCount int) error {
	if c.InstanceCount < 0 {
		return fmt.Errorf("%w: negative instance count %d", ErrInvalidConfig, c.InstanceCount)
	}
	if c.ClosedLines != nil && len(c.ClosedLines) != lineCount {
		return fmt.Errorf("%w: %d closed flags for %d lines", ErrInvalidConfig, len(c.ClosedLines), lineCount)
	}
	return nil
}

// closedFor reports whether closing is requested for line i, combining the
// polyline's own flag with the configuration.
func (c *Config) closedFor(i int, line Polyline) bool {
	if line.Closed || c.Closed {
		return true
	}
	return c.ClosedLines != nil && i < len(c.ClosedLines) && c.ClosedLines[i]
}

// widthFor returns the width function for line, or nil for constant width 1.
func (c *Config) widthFor(line Polyline) WidthFunc {
	if line.Width != nil {
		return line.Width
	}
	return c.Width
}

// WithClosed closes every polyline in the batch.
func WithClosed(closed bool) Option {
	return func(c *Config) {
		c.Closed = closed
	}
}

// WithClosedLines closes polylines individually. The slice length must equal
// the number of polylines passed to Build.
func WithClosedLines(closed []bool) Option {
	return func(c *Config) {
		c.ClosedLines = closed
	}
}

// WithWidthFunc sets the default width function.
func WithWidthFunc(fn WidthFunc) Option {
	return func(c *Config) {
		c.Width = fn
	}
}

// WithUV controls allocation of the uv attribute.
func WithUV(enabled bool) Option {
	return func(c *Config) {
		c.NeedsUV = enabled
	}
}

// WithWidth controls allocation of the width attribute.
func WithWidth(enabled bool) Option {
	return func(c *Config) {
		c.NeedsWidth = enabled
	}
}

// WithCounter controls allocation of the counter attribute.
func WithCounter(enabled bool) Option {
	return func(c *Config) {
		c.NeedsCounter = enabled
	}
}

// WithPrevious controls allocation of the previous attribute.
func WithPrevious(enabled bool) Option {
	return func(c *Config) {
		c.NeedsPrevious = enabled
	}
}

// WithNext controls allocation of the next attribute.
func WithNext(enabled bool) Option {
	return func(c *Config) {
		c.NeedsNext = enabled
	}
}

// WithInstanceCount allocates a per-instance attribute namespace with n slots.
func WithInstanceCount(n int) Option {
	return func(c *Config) {
		c.InstanceCount = n
	}
}

// WithFallbackHook registers a function called on every incremental update
// that falls back to a full rebuild.
func WithFallbackHook(fn func(reason error)) Option {
	return func(c *Config) {
		c.FallbackHook = fn
	}
}

// UpdateOption configures a single SetPositions or Advance call.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	bounds bool
}

// WithBoundsUpdate recomputes bounding volumes after an in-place update.
// Full rebuilds always recompute them.
func WithBoundsUpdate() UpdateOption {
	return func(o *updateOptions) {
		o.bounds = true
	}
}
