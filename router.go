package logmux

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trickstertwo/xclock"
)

// ErrOutputNotFound indicates a direct output operation named an output that
// is not in the registry.
var ErrOutputNotFound = errors.New("output not found")

// ChannelFactory builds the channel stored by [Router.RegisterChannel].
type ChannelFactory func(name string, cfg ChannelConfig) Channel

// Router owns the channel and output registries and forwards operations to
// the channels named by a [Selector].
//
// All forwarding and registry mutation is serialized under one lock, so a
// channel cannot be unregistered out from under an in-flight forward.
// Channel and output implementations are treated as black boxes: an error
// returned by one propagates to the caller as-is and aborts the remainder of
// that call. Safe for concurrent use. Create instances with [New].
type Router struct {
	mu         sync.RWMutex
	channels   *channelRegistry
	outputs    *outputRegistry
	fwd        forwarder
	logger     *slog.Logger
	newChannel ChannelFactory
}

// Option configures a [Router].
type Option func(*Router)

// WithLogger sets the diagnostic logger that receives registry anomaly
// warnings (duplicate names, selectors naming unknown channels). The default
// is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithChannelFactory sets how [Router.RegisterChannel] builds channels. The
// default factory builds a [LevelChannel].
func WithChannelFactory(factory ChannelFactory) Option {
	return func(r *Router) {
		r.newChannel = factory
	}
}

// New creates a [Router] with the given options.
func New(opts ...Option) *Router {
	r := &Router{
		channels: newChannelRegistry(),
		outputs:  newOutputRegistry(),
		newChannel: func(name string, cfg ChannelConfig) Channel {
			return NewLevelChannel(name, cfg.Level)
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	r.fwd = forwarder{
		channels: r.channels,
		logger:   r.logger,
	}

	return r
}

// RegisterChannel builds a channel from cfg via the router's channel factory
// and stores it under name. Registering a name that already exists is
// reported as an anomaly and replaces the previous channel; the replaced
// channel's output attachments are discarded with it.
func (r *Router) RegisterChannel(name string, cfg ChannelConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := r.channels.register(name, r.newChannel(name, cfg))
	if replaced {
		r.logger.Warn("channel already registered, replacing", slog.String("channel", name))
	}
}

// UnregisterChannel removes and returns the channel stored under name. The
// channel's attached outputs survive when still referenced by the output
// registry or by other channels. Idempotent: the second call reports false.
func (r *Router) UnregisterChannel(name string) (Channel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channels.unregister(name)
}

// RegisterOutput attaches out to every channel resolved by sel, then records
// it in the output registry under its name. Channels registered after this
// call do not receive the output retroactively.
//
// Re-registering a name is reported as an anomaly; the previously registered
// instance is first detached from every channel so the registry entry and
// channel attachments never diverge.
func (r *Router) RegisterOutput(out Output, sel Selector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.outputs.lookup(out.Name())
	if ok {
		r.logger.Warn("output already registered, replacing", slog.String("output", out.Name()))

		err := r.fwd.broadcast(All, func(ch Channel) error {
			ch.Remove(old)
			return nil
		})
		if err != nil {
			return err
		}
	}

	err := r.fwd.broadcast(sel, func(ch Channel) error {
		ch.Add(out)
		return nil
	})
	if err != nil {
		return err
	}

	r.outputs.register(out)

	return nil
}

// UnregisterOutput detaches the named output from every registered channel,
// including channels it was never attached to (a no-op there), then removes
// and returns the registry entry.
func (r *Router) UnregisterOutput(name string) (Output, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out, ok := r.outputs.lookup(name)
	if !ok {
		return nil, false
	}

	_ = r.fwd.broadcast(All, func(ch Channel) error {
		ch.Remove(out)
		return nil
	})

	return r.outputs.unregister(name)
}

// Log delivers one record to every channel resolved by sel. The first error
// returned by a channel aborts delivery to the remaining channels and is
// returned as-is.
func (r *Router) Log(sel Selector, level Level, msg string, attrs ...slog.Attr) error {
	rec := newRecord(level, msg, attrs)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fwd.broadcast(sel, func(ch Channel) error {
		return ch.Log(rec)
	})
}

// LogAndFail delivers one record via each channel's LogAndFail. Since every
// channel's LogAndFail returns a non-nil error, only the first resolved
// channel is invoked; its error is returned as-is.
func (r *Router) LogAndFail(sel Selector, level Level, msg string, attrs ...slog.Attr) error {
	rec := newRecord(level, msg, attrs)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fwd.broadcast(sel, func(ch Channel) error {
		return ch.LogAndFail(rec)
	})
}

// LogAndFailHard delivers one error-level record via each channel's
// LogAndFailHard, targeting all channels. As with [Router.LogAndFail], the
// first channel's error terminates the forward.
func (r *Router) LogAndFailHard(msg string, attrs ...slog.Attr) error {
	rec := newRecord(LevelError, msg, attrs)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fwd.broadcast(All, func(ch Channel) error {
		return ch.LogAndFailHard(rec)
	})
}

// LogToOutput bypasses channel routing and delivers one record directly to
// the named output. Returns [ErrOutputNotFound] when the name is not
// registered; an error from the output itself propagates as-is.
func (r *Router) LogToOutput(name string, level Level, msg string, attrs ...slog.Attr) error {
	rec := newRecord(level, msg, attrs)

	r.mu.RLock()
	out, ok := r.outputs.lookup(name)
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrOutputNotFound, name)
	}

	return out.Log(rec)
}

// WouldLog reports whether at least one channel resolved by sel would log at
// the given level. Returns false when sel resolves to zero channels.
func (r *Router) WouldLog(level Level, sel Selector) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fwd.query(sel, func(ch Channel) bool {
		return ch.WouldLog(level)
	})
}

// Channel returns the channel registered under name, if any.
func (r *Router) Channel(name string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.channels.lookup(name)
}

// Output returns the output registered under name, if any.
func (r *Router) Output(name string) (Output, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.outputs.lookup(name)
}

// ChannelNames returns the registered channel names in registration order.
func (r *Router) ChannelNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.channels.names()
}

// newRecord stamps one record per router call, so every channel and output
// in the same forward observes the same timestamp.
func newRecord(level Level, msg string, attrs []slog.Attr) Record {
	return Record{
		Time:    xclock.Now(),
		Level:   level,
		Message: msg,
		Attrs:   attrs,
	}
}
