package logmux

import "slices"

// channelRegistry owns the name→channel mapping. It is not safe for
// concurrent use on its own; the router serializes access.
//
// register is the single mutation entry point for duplicate names, so the
// replace-on-collision policy can change here without touching the forwarder.
type channelRegistry struct {
	channels map[string]Channel
	order    []string
}

func newChannelRegistry() *channelRegistry {
	return &channelRegistry{
		channels: make(map[string]Channel),
	}
}

// register stores ch under name and reports whether an existing channel was
// replaced. A replacement keeps the original registration position.
func (r *channelRegistry) register(name string, ch Channel) bool {
	_, replaced := r.channels[name]
	if !replaced {
		r.order = append(r.order, name)
	}

	r.channels[name] = ch

	return replaced
}

func (r *channelRegistry) unregister(name string) (Channel, bool) {
	ch, ok := r.channels[name]
	if !ok {
		return nil, false
	}

	delete(r.channels, name)

	r.order = slices.DeleteFunc(r.order, func(n string) bool {
		return n == name
	})

	return ch, true
}

func (r *channelRegistry) lookup(name string) (Channel, bool) {
	ch, ok := r.channels[name]

	return ch, ok
}

// names returns a registration-order snapshot of the registered names.
// Callers own the returned slice.
func (r *channelRegistry) names() []string {
	return slices.Clone(r.order)
}

// outputRegistry owns the name→output mapping, independent of which channels
// an output is attached to. Not safe for concurrent use on its own; the
// router serializes access.
type outputRegistry struct {
	outputs map[string]Output
}

func newOutputRegistry() *outputRegistry {
	return &outputRegistry{
		outputs: make(map[string]Output),
	}
}

// register stores out under its own name and reports whether an existing
// entry was replaced.
func (r *outputRegistry) register(out Output) bool {
	name := out.Name()
	_, replaced := r.outputs[name]
	r.outputs[name] = out

	return replaced
}

func (r *outputRegistry) unregister(name string) (Output, bool) {
	out, ok := r.outputs[name]
	if !ok {
		return nil, false
	}

	delete(r.outputs, name)

	return out, true
}

func (r *outputRegistry) lookup(name string) (Output, bool) {
	out, ok := r.outputs[name]

	return out, ok
}
