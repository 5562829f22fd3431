// Package lockout tracks the timed suspension of the terminal's hidden
// command after repeated failed password attempts.
package lockout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/store"
)

const (
	// Key is the record name the deadline is stored under.
	Key = "terminal_lockout"
	// Duration is how long the gate stays shut after MaxAttempts failures.
	Duration = 10 * time.Minute
	// MaxAttempts is the number of consecutive failures that trigger a lockout.
	MaxAttempts = 3
)

// Tracker reads and writes the lockout deadline. The deadline is stored as
// Unix milliseconds in decimal.
type Tracker struct {
	kv  store.KV
	log *zap.Logger

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// New returns a Tracker over kv. A nil logger discards diagnostics.
func New(kv store.KV, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{kv: kv, log: log, Now: time.Now}
}

// Remaining reports how long the lockout still lasts. An expired or
// unreadable record is cleared and reported as not locked.
func (t *Tracker) Remaining() (time.Duration, bool) {
	until, ok := t.Until()
	if !ok {
		return 0, false
	}
	left := until.Sub(t.Now())
	if left <= 0 {
		if err := t.kv.Clear(Key); err != nil {
			t.log.Warn("clear expired lockout", zap.Error(err))
		}
		return 0, false
	}
	return left, true
}

// Until returns the stored deadline without judging whether it has passed.
func (t *Tracker) Until() (time.Time, bool) {
	raw, err := t.kv.Get(Key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			t.log.Warn("read lockout", zap.Error(err))
		}
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		t.log.Warn("discarding malformed lockout record", zap.String("value", raw))
		if err := t.kv.Clear(Key); err != nil {
			t.log.Warn("clear lockout", zap.Error(err))
		}
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Lock writes a deadline d from now and returns it.
func (t *Tracker) Lock(d time.Duration) (time.Time, error) {
	until := t.Now().Add(d)
	if err := t.kv.Set(Key, strconv.FormatInt(until.UnixMilli(), 10)); err != nil {
		return time.Time{}, fmt.Errorf("lockout: persist deadline: %w", err)
	}
	t.log.Info("terminal locked", zap.Time("until", until))
	return until, nil
}

// Clear removes any stored deadline.
func (t *Tracker) Clear() error {
	if err := t.kv.Clear(Key); err != nil {
		return fmt.Errorf("lockout: clear: %w", err)
	}
	return nil
}

// Minutes rounds d up to whole minutes, the unit the terminal reports.
func Minutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

// Message renders the refusal shown while the gate is locked.
func Message(d time.Duration) string {
	m := Minutes(d)
	unit := "minutes"
	if m == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("Access temporarily locked. Please try again in %d %s.", m, unit)
}
