package muxconfig

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for config loading, allowing callers to
// customize flag names while keeping sensible defaults via [NewLoader].
type Flags struct {
	Config string
}

// NewLoader creates a new [Loader] embedding these flag names.
func (f Flags) NewLoader() *Loader {
	return &Loader{
		Flags: f,
	}
}

// Loader holds the CLI flag value for the config path.
//
// Create instances with [NewLoader] and register CLI flags with
// [Loader.RegisterFlags]. Use [Loader.Load] to read the configured file.
type Loader struct {
	Path  string
	Flags Flags
}

// NewLoader returns a new [Loader] with default flag names.
func NewLoader() *Loader {
	f := Flags{
		Config: "config",
	}

	return f.NewLoader()
}

// RegisterFlags adds the config path flag to the given [*pflag.FlagSet].
func (l *Loader) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&l.Path, l.Flags.Config, "logmux.yaml", "path to the router config file")
}

// RegisterCompletions registers shell completions for the config flag on cmd.
func (l *Loader) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.MarkFlagFilename(l.Flags.Config, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering config completion: %w", err)
	}

	return nil
}

// Load reads the config at the configured path.
func (l *Loader) Load() (*Config, error) {
	return LoadFile(l.Path)
}
