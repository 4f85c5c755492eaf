package logmux

import "log/slog"

// forwarder resolves selectors against the channel registry and applies an
// operation to each resolved channel. It holds no state of its own beyond
// the registry and diagnostic logger it was built with; the router serializes
// access to the underlying registry.
type forwarder struct {
	channels *channelRegistry
	logger   *slog.Logger
}

// resolve expands sel into concrete channel names. The default selector
// snapshots the registry's names at call time, so channels registered while
// a forward is in flight do not join it. Explicit names are kept as given,
// duplicates included.
func (f *forwarder) resolve(sel Selector) []string {
	if !sel.explicit {
		return f.channels.names()
	}

	return sel.names
}

// broadcast applies op to each channel resolved by sel in order. Names with
// no registered channel are reported and skipped. The first error returned
// by op aborts the loop and propagates, leaving the remaining channels
// uninvoked; delivery is not transactional.
func (f *forwarder) broadcast(sel Selector, op func(Channel) error) error {
	for _, name := range f.resolve(sel) {
		ch, ok := f.channels.lookup(name)
		if !ok {
			f.logger.Warn("channel does not exist", slog.String("channel", name))
			continue
		}

		err := op(ch)
		if err != nil {
			return err
		}
	}

	return nil
}

// query applies op to each channel resolved by sel and ORs the results.
// Names with no registered channel are reported and skipped; a selector
// resolving to zero channels yields false.
func (f *forwarder) query(sel Selector, op func(Channel) bool) bool {
	matched := false

	for _, name := range f.resolve(sel) {
		ch, ok := f.channels.lookup(name)
		if !ok {
			f.logger.Warn("channel does not exist", slog.String("channel", name))
			continue
		}

		if op(ch) {
			matched = true
		}
	}

	return matched
}
