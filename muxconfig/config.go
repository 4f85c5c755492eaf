package muxconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/logmux"
)

// ErrInvalidConfig indicates a config that failed to parse or validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config declares the channels and outputs of a router.
//
// Create instances with [Load] or [LoadFile], then call [Config.Build].
type Config struct {
	Channels []ChannelSpec `yaml:"channels"`
	Outputs  []OutputSpec  `yaml:"outputs"`
}

// ChannelSpec declares one channel. An empty Level defaults to debug so the
// channel passes everything and filtering is left to the outputs.
type ChannelSpec struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// OutputSpec declares one output. Path selects the destination: "" or "-"
// for stdout, "stderr" for stderr, anything else a file opened for append.
// An empty Channels list attaches the output to every declared channel.
type OutputSpec struct {
	Name     string   `yaml:"name"`
	Path     string   `yaml:"path"`
	Level    string   `yaml:"level"`
	Format   string   `yaml:"format"`
	Channels []string `yaml:"channels"`
}

// Load parses and validates a YAML config.
func Load(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads and parses the config at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return Load(data)
}

// Validate checks names for presence and uniqueness and level/format strings
// for parseability. The router itself tolerates duplicate names by replacing;
// in a declarative config a duplicate is always a mistake, so it is rejected
// here instead.
func (c *Config) Validate() error {
	channels := make(map[string]struct{}, len(c.Channels))

	for _, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("%w: channel with empty name", ErrInvalidConfig)
		}

		if _, ok := channels[ch.Name]; ok {
			return fmt.Errorf("%w: duplicate channel %q", ErrInvalidConfig, ch.Name)
		}

		channels[ch.Name] = struct{}{}

		if ch.Level != "" {
			_, err := logmux.ParseLevel(ch.Level)
			if err != nil {
				return fmt.Errorf("%w: channel %q: %w", ErrInvalidConfig, ch.Name, err)
			}
		}
	}

	outputs := make(map[string]struct{}, len(c.Outputs))

	for _, out := range c.Outputs {
		if out.Name == "" {
			return fmt.Errorf("%w: output with empty name", ErrInvalidConfig)
		}

		if _, ok := outputs[out.Name]; ok {
			return fmt.Errorf("%w: duplicate output %q", ErrInvalidConfig, out.Name)
		}

		outputs[out.Name] = struct{}{}

		if out.Level != "" {
			_, err := logmux.ParseLevel(out.Level)
			if err != nil {
				return fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, out.Name, err)
			}
		}

		if out.Format != "" {
			_, err := logmux.ParseFormat(out.Format)
			if err != nil {
				return fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, out.Name, err)
			}
		}

		for _, name := range out.Channels {
			if _, ok := channels[name]; !ok {
				return fmt.Errorf("%w: output %q references unknown channel %q",
					ErrInvalidConfig, out.Name, name)
			}
		}
	}

	return nil
}

// Build registers the declared channels and outputs on a new router. The
// returned closer closes every file the build opened; callers should close it
// when done with the router. Opened files are closed on a failed build.
func (c *Config) Build(opts ...logmux.Option) (*logmux.Router, io.Closer, error) {
	r := logmux.New(opts...)

	var files closers

	for _, ch := range c.Channels {
		level := logmux.LevelDebug

		if ch.Level != "" {
			var err error

			level, err = logmux.ParseLevel(ch.Level)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: channel %q: %w", ErrInvalidConfig, ch.Name, err)
			}
		}

		r.RegisterChannel(ch.Name, logmux.ChannelConfig{Level: level})
	}

	for _, spec := range c.Outputs {
		out, err := buildOutput(spec, &files)
		if err != nil {
			_ = files.Close()
			return nil, nil, err
		}

		sel := logmux.All
		if len(spec.Channels) > 0 {
			sel = logmux.To(spec.Channels...)
		}

		err = r.RegisterOutput(out, sel)
		if err != nil {
			_ = files.Close()
			return nil, nil, fmt.Errorf("registering output %q: %w", spec.Name, err)
		}
	}

	return r, files, nil
}

func buildOutput(spec OutputSpec, files *closers) (logmux.Output, error) {
	var w io.Writer

	switch spec.Path {
	case "", "-":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(spec.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", spec.Name, err)
		}

		*files = append(*files, f)
		w = f
	}

	var opts []logmux.OutputOption

	if spec.Level != "" {
		level, err := logmux.ParseLevel(spec.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, spec.Name, err)
		}

		opts = append(opts, logmux.WithMinLevel(level))
	}

	if spec.Format != "" {
		format, err := logmux.ParseFormat(spec.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, spec.Name, err)
		}

		opts = append(opts, logmux.WithFormat(format))
	}

	return logmux.NewWriterOutput(spec.Name, w, opts...), nil
}

// closers closes a set of opened files as one.
type closers []io.Closer

func (cs closers) Close() error {
	var errs []error

	for _, c := range cs {
		err := c.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
