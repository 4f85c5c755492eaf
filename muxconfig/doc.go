// Package muxconfig builds a [go.jacobcolvin.com/logmux.Router] from a
// declarative YAML document.
//
// A config names the channels to register and the outputs to attach, each
// output with an optional level gate, line format, file path, and channel
// membership list:
//
//	channels:
//	  - name: api
//	    level: info
//	  - name: db
//	    level: debug
//	outputs:
//	  - name: all
//	    path: "-"
//	  - name: errors
//	    path: errors.log
//	    level: error
//	    format: logfmt
//	  - name: db
//	    path: db.log
//	    channels: [db]
//
// Use [Load] or [LoadFile] to parse, then [Config.Build] to construct the
// router and open the output files. [Loader] wires the config path into CLI
// flags via [github.com/spf13/pflag] with shell completion support via
// [github.com/spf13/cobra], mirroring the flag pattern used across the
// module.
package muxconfig
