package logmux

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrLogFailure is returned by [LevelChannel.LogAndFail] after the
	// record has been delivered.
	ErrLogFailure = errors.New("log failure")
	// ErrHardLogFailure is returned by [LevelChannel.LogAndFailHard] after
	// the record has been delivered.
	ErrHardLogFailure = errors.New("hard log failure")
)

// Channel is the capability the router requires of a sink dispatcher. The
// router never inspects a channel beyond this method set; any type
// implementing it can be registered via a channel factory.
//
// Log-family methods report delivery problems as errors; the router
// propagates them to the caller unwrapped, aborting the remainder of the
// forwarding loop. LogAndFail and LogAndFailHard return a non-nil error even
// on successful delivery.
type Channel interface {
	// Add attaches an output. Attaching an output whose name is already
	// attached replaces the previous attachment.
	Add(out Output)
	// Remove detaches an output. Removing an output that was never
	// attached is a no-op.
	Remove(out Output)
	// Log delivers the record to every attached output that accepts it.
	Log(rec Record) error
	// LogAndFail logs the record, then returns an error carrying the
	// record's message.
	LogAndFail(rec Record) error
	// LogAndFailHard logs the record, then returns an error that callers
	// should treat as unrecoverable.
	LogAndFailHard(rec Record) error
	// WouldLog reports whether a record at the given level passes the
	// channel's own filtering.
	WouldLog(level Level) bool
}

// ChannelConfig configures a channel built by a router's channel factory.
// For the default [LevelChannel] factory, Level is the minimum level the
// channel passes through to its outputs.
type ChannelConfig struct {
	Level Level
}

// LevelChannel is the default [Channel] implementation: a minimum-level
// filter in front of a named set of attached outputs.
//
// Attachments are keyed by output name and delivered in attachment order.
// Safe for concurrent use. Create instances with [NewLevelChannel].
type LevelChannel struct {
	name    string
	min     Level
	mu      sync.RWMutex
	outputs map[string]Output
	order   []string
}

// NewLevelChannel creates a channel that passes records at or above min.
func NewLevelChannel(name string, min Level) *LevelChannel {
	return &LevelChannel{
		name:    name,
		min:     min,
		outputs: make(map[string]Output),
	}
}

// Name returns the name the channel was created with.
func (c *LevelChannel) Name() string {
	return c.name
}

// WouldLog reports whether level passes the channel's minimum level.
func (c *LevelChannel) WouldLog(level Level) bool {
	return level >= c.min
}

// Add attaches out, replacing any previous attachment with the same name.
// A replacement keeps the original attachment position.
func (c *LevelChannel) Add(out Output) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := out.Name()
	if _, ok := c.outputs[name]; !ok {
		c.order = append(c.order, name)
	}

	c.outputs[name] = out
}

// Remove detaches out. The attachment is removed only when it is the same
// instance: a different output that happens to share the name stays attached.
func (c *LevelChannel) Remove(out Output) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := out.Name()
	if c.outputs[name] != out {
		return
	}

	delete(c.outputs, name)

	c.order = slices.DeleteFunc(c.order, func(n string) bool {
		return n == name
	})
}

// Output returns the attached output with the given name, if any.
func (c *LevelChannel) Output(name string) (Output, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out, ok := c.outputs[name]

	return out, ok
}

// Outputs returns the attached outputs in attachment order.
func (c *LevelChannel) Outputs() []Output {
	c.mu.RLock()
	defer c.mu.RUnlock()

	outs := make([]Output, 0, len(c.order))
	for _, name := range c.order {
		outs = append(outs, c.outputs[name])
	}

	return outs
}

// Log delivers rec to every attached output in attachment order. Records
// below the channel's minimum level are dropped. The first output error
// aborts delivery to the remaining outputs and is returned as-is.
func (c *LevelChannel) Log(rec Record) error {
	if !c.WouldLog(rec.Level) {
		return nil
	}

	for _, out := range c.Outputs() {
		err := out.Log(rec)
		if err != nil {
			return err
		}
	}

	return nil
}

// LogAndFail logs rec, then returns [ErrLogFailure] wrapping the record's
// message. A delivery error takes precedence over the failure error.
func (c *LevelChannel) LogAndFail(rec Record) error {
	err := c.Log(rec)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: %s", ErrLogFailure, rec.Message)
}

// LogAndFailHard logs rec, then returns [ErrHardLogFailure] wrapping the
// record's message.
func (c *LevelChannel) LogAndFailHard(rec Record) error {
	err := c.Log(rec)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: %s", ErrHardLogFailure, rec.Message)
}

// Compile-time interface satisfaction check.
var _ Channel = (*LevelChannel)(nil)
