package logmux

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Output is the capability the router requires of a destination sink. The
// same instance may be attached to any number of channels; Name must be
// stable for the lifetime of the registration.
type Output interface {
	Name() string
	Log(rec Record) error
}

// Format represents a [WriterOutput] line format.
type Format string

const (
	// FormatText writes "[level] message key=value ..." lines.
	FormatText Format = "text"
	// FormatLogfmt writes logfmt lines including the record timestamp.
	FormatLogfmt Format = "logfmt"
)

// ErrUnknownFormat indicates an unrecognized output format string.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format string and returns the corresponding [Format].
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatText, FormatLogfmt}, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// AllFormatStrings returns all format strings. Useful for CLI flag help and
// shell completions.
func AllFormatStrings() []string {
	return []string{string(FormatText), string(FormatLogfmt)}
}

// WriterOutput is the default [Output] implementation: a named line writer
// with an optional minimum level of its own, independent of any channel's
// filtering.
//
// Writes are serialized with a mutex so one instance can be shared across
// channels. Create instances with [NewWriterOutput].
type WriterOutput struct {
	name   string
	w      io.Writer
	min    Level
	gated  bool
	format Format
	mu     sync.Mutex
}

// NewWriterOutput creates an output writing to w. The default format is
// [FormatText] with no level gate.
func NewWriterOutput(name string, w io.Writer, opts ...OutputOption) *WriterOutput {
	o := &WriterOutput{
		name:   name,
		w:      w,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// OutputOption configures a [WriterOutput].
type OutputOption func(*WriterOutput)

// WithMinLevel gates the output at min: records below it are dropped even
// when the delivering channel passed them.
func WithMinLevel(min Level) OutputOption {
	return func(o *WriterOutput) {
		o.min = min
		o.gated = true
	}
}

// WithFormat sets the line format.
func WithFormat(format Format) OutputOption {
	return func(o *WriterOutput) {
		o.format = format
	}
}

// Name returns the name the output was created with.
func (o *WriterOutput) Name() string {
	return o.name
}

// Log formats rec and writes it as one line. Records below the output's own
// minimum level are dropped without writing.
func (o *WriterOutput) Log(rec Record) error {
	if o.gated && rec.Level < o.min {
		return nil
	}

	var sb strings.Builder

	switch o.format {
	case FormatLogfmt:
		appendLogfmt(&sb, rec)
	default:
		appendText(&sb, rec)
	}

	sb.WriteByte('\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	_, err := io.WriteString(o.w, sb.String())
	if err != nil {
		return fmt.Errorf("output %q: %w", o.name, err)
	}

	return nil
}

func appendText(sb *strings.Builder, rec Record) {
	sb.WriteByte('[')
	sb.WriteString(rec.Level.String())
	sb.WriteString("] ")
	sb.WriteString(rec.Message)

	for _, attr := range rec.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteByte('=')
		sb.WriteString(attr.Value.String())
	}
}

func appendLogfmt(sb *strings.Builder, rec Record) {
	sb.WriteString("time=")
	sb.WriteString(rec.Time.Format(time.RFC3339))
	sb.WriteString(" level=")
	sb.WriteString(rec.Level.String())
	sb.WriteString(" msg=")
	sb.WriteString(strconv.Quote(rec.Message))

	for _, attr := range rec.Attrs {
		sb.WriteByte(' ')
		writeLogfmtToken(sb, attr.Key)
		sb.WriteByte('=')
		writeLogfmtToken(sb, attr.Value.String())
	}
}

func writeLogfmtToken(sb *strings.Builder, v string) {
	if strings.ContainsAny(v, " \t\"=") {
		sb.WriteString(strconv.Quote(v))
		return
	}

	sb.WriteString(v)
}

// Compile-time interface satisfaction check.
var _ Output = (*WriterOutput)(nil)
