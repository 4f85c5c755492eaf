package logmux_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logmux"
	"go.jacobcolvin.com/logmux/stringtest"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    logmux.Format
		expectError bool
	}{
		"text format": {
			input:    "text",
			expected: logmux.FormatText,
		},
		"logfmt format": {
			input:    "logfmt",
			expected: logmux.FormatLogfmt,
		},
		"case insensitive": {
			input:    "LOGFMT",
			expected: logmux.FormatLogfmt,
		},
		"unknown format": {
			input:       "json",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := logmux.ParseFormat(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, logmux.ErrUnknownFormat)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, f)
			}
		})
	}
}

func TestWriterOutputLog(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tcs := map[string]struct {
		opts []logmux.OutputOption
		rec  logmux.Record
		want string
	}{
		"text": {
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelInfo,
				Message: "started",
			},
			want: "[info] started\n",
		},
		"text with attrs": {
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelWarn,
				Message: "slow query",
				Attrs:   []slog.Attr{slog.String("table", "orders"), slog.Int("rows", 12)},
			},
			want: "[warn] slow query table=orders rows=12\n",
		},
		"logfmt": {
			opts: []logmux.OutputOption{logmux.WithFormat(logmux.FormatLogfmt)},
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelError,
				Message: "boom",
				Attrs:   []slog.Attr{slog.String("reason", "disk full")},
			},
			want: `time=2025-01-01T00:00:00Z level=error msg="boom" reason="disk full"` + "\n",
		},
		"logfmt quotes unruly attr keys": {
			opts: []logmux.OutputOption{logmux.WithFormat(logmux.FormatLogfmt)},
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelInfo,
				Message: "keys",
				Attrs:   []slog.Attr{slog.String("user id", "42"), slog.String("a=b", "c")},
			},
			want: `time=2025-01-01T00:00:00Z level=info msg="keys" "user id"=42 "a=b"=c` + "\n",
		},
		"below own minimum level": {
			opts: []logmux.OutputOption{logmux.WithMinLevel(logmux.LevelError)},
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelWarn,
				Message: "dropped",
			},
			want: "",
		},
		"at own minimum level": {
			opts: []logmux.OutputOption{logmux.WithMinLevel(logmux.LevelError)},
			rec: logmux.Record{
				Time:    at,
				Level:   logmux.LevelError,
				Message: "kept",
			},
			want: "[error] kept\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			out := logmux.NewWriterOutput("test", &buf, tc.opts...)
			require.NoError(t, out.Log(tc.rec))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriterOutputAccumulates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	out := logmux.NewWriterOutput("test", &buf)

	require.NoError(t, out.Log(logmux.Record{Level: logmux.LevelInfo, Message: "one"}))
	require.NoError(t, out.Log(logmux.Record{Level: logmux.LevelWarn, Message: "two"}))

	want := stringtest.JoinLF(
		"[info] one",
		"[warn] two",
		"",
	)
	assert.Equal(t, want, buf.String())
}
