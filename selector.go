package logmux

import "slices"

// Selector names the channels a router operation targets. The zero value
// (also exported as [All]) targets every channel registered at call time;
// [To] targets an explicit ordered list of names.
//
// Resolution happens per call against the live channel registry: a name with
// no registered channel is reported on the diagnostic logger and skipped,
// and a name listed twice is processed once per occurrence.
type Selector struct {
	names    []string
	explicit bool
}

// All targets every currently registered channel.
var All = Selector{}

// To targets the named channels in the order given. To() with no names
// targets nothing.
func To(names ...string) Selector {
	return Selector{
		names:    slices.Clone(names),
		explicit: true,
	}
}
