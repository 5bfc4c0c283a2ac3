package calibration

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/core/log"
)

// Context owns the coefficient table for a set of calculators. The table
// is loaded once, possibly in the background, and is read-only afterwards.
type Context struct {
	source  Source
	logger  *log.Logger
	timeout time.Duration

	done   chan struct{}
	coeffs Coefficients
	err    error
}

// ContextOption configures a Context
type ContextOption func(*Context)

// WithLogger sets the logger used to report loading
func WithLogger(logger *log.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds the time a source may take to load. Zero means no limit.
func WithTimeout(d time.Duration) ContextOption {
	return func(c *Context) {
		c.timeout = d
	}
}

func newContext(src Source, opts []ContextOption) *Context {
	if src == nil {
		src = Builtin()
	}
	c := &Context{
		source: src,
		logger: log.Discard(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("calibration")
	return c
}

// NewContext starts loading src on a new goroutine and returns at once.
// Call Wait or WaitInitialization before using the coefficients.
func NewContext(ctx context.Context, src Source, opts ...ContextOption) *Context {
	c := newContext(src, opts)
	go c.load(ctx)
	return c
}

// NewContextSync loads src before returning
func NewContextSync(ctx context.Context, src Source, opts ...ContextOption) *Context {
	c := newContext(src, opts)
	c.load(ctx)
	return c
}

func (c *Context) load(ctx context.Context) {
	defer close(c.done)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	timer := c.logger.StartTimer("load coefficients").WithField("source", c.source.Name())
	coeffs, err := c.safeLoad(ctx)
	if err != nil {
		c.err = errors.CalibrationLoad(c.source.Name(), err)
		timer.StopWithError(c.err)
		return
	}
	c.coeffs = coeffs
	timer.Stop()
}

// safeLoad turns a panicking source into an error
func (c *Context) safeLoad(ctx context.Context) (coeffs Coefficients, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("calibration source panicked: %v", r)
		}
	}()
	return c.source.Load(ctx)
}

// Wait blocks until loading has finished and returns its error
func (c *Context) Wait() error {
	<-c.done
	return c.err
}

// WaitInitialization is Wait with a deadline. It returns ctx.Err() if ctx
// ends first; loading continues in the background.
func (c *Context) WaitInitialization(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Context) finished() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// IsInitialized reports whether the coefficients were loaded successfully.
// It does not block.
func (c *Context) IsInitialized() bool {
	return c.finished() && c.err == nil
}

// HasError reports whether loading finished with an error. It does not block.
func (c *Context) HasError() bool {
	return c.finished() && c.err != nil
}

// Err returns the loading error, nil while loading is still running
func (c *Context) Err() error {
	if !c.finished() {
		return nil
	}
	return c.err
}

// Source returns the source the context loads from
func (c *Context) Source() Source {
	return c.source
}

// Coefficients blocks until loading has finished and returns the table.
// The error is non-nil if loading failed.
func (c *Context) Coefficients() (Coefficients, error) {
	if err := c.Wait(); err != nil {
		return Coefficients{}, errors.ContextNotReady(err)
	}
	return c.coeffs, nil
}
