package logmux

import (
	"log/slog"
	"time"
)

// Record is one log call as delivered to channels and outputs. The router
// stamps Time once per call, so every channel and output resolved by the same
// selector observes the same timestamp.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Attrs   []slog.Attr
}
