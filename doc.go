// Package logmux routes log calls to named channels and fans them out to
// shared, named outputs.
//
// A [Channel] is an independently addressable sink dispatcher: it holds its
// own set of attached outputs and applies its own level filtering. An
// [Output] is a named destination that may be attached to any number of
// channels at once while remaining individually addressable and removable.
// The [Router] ties the two together: it owns the channel and output
// registries and forwards each operation to the subset of channels named by a
// [Selector].
//
// Typical usage registers a few channels, attaches outputs to subsets of
// them, then logs through selectors:
//
//	r := logmux.New()
//	r.RegisterChannel("api", logmux.ChannelConfig{Level: logmux.LevelInfo})
//	r.RegisterChannel("db", logmux.ChannelConfig{Level: logmux.LevelInfo})
//
//	all := logmux.NewWriterOutput("all", os.Stderr)
//	_ = r.RegisterOutput(all, logmux.All)
//
//	dbFile := logmux.NewWriterOutput("db", f, logmux.WithFormat(logmux.FormatLogfmt))
//	_ = r.RegisterOutput(dbFile, logmux.To("db"))
//
//	_ = r.Log(logmux.To("api", "db"), logmux.LevelWarn, "slow query",
//	    slog.Duration("elapsed", elapsed))
//
// Registering an output with [All] attaches it to every channel that exists
// at registration time; channels registered later do not receive it
// retroactively. [Router.UnregisterOutput] detaches the output from every
// channel and returns the removed instance.
//
// Forwarding to multiple channels is not transactional: the first error
// returned by a channel or output aborts the remainder of that call, leaving
// later selector entries uninvoked. Registry anomalies (duplicate names,
// selectors naming unknown channels) are reported on a diagnostic
// [log/slog.Logger] and never abort a call.
//
// The router treats channels and outputs as opaque capabilities. The package
// ships [LevelChannel] and [WriterOutput] as default implementations; any
// type satisfying [Channel] or [Output] can be registered in their place.
// Declarative construction from YAML lives in
// [go.jacobcolvin.com/logmux/muxconfig].
package logmux
