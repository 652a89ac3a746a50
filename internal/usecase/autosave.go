package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"resume-builder/internal/domain"

	"github.com/jonboulle/clockwork"
)

const defaultWriteTimeout = 5 * time.Second

// Autosaver coalesces snapshot writes: Schedule cancels any pending write
// and arms a new one that fires after the debounce interval. At most one
// write is ever pending; the last scheduled snapshot wins.
type Autosaver struct {
	store        SnapshotStore
	key          string
	debounce     time.Duration
	writeTimeout time.Duration
	clock        clockwork.Clock
	metrics      *Metrics

	mu      sync.Mutex
	timer   clockwork.Timer
	pending []byte
	seq     uint64

	// writeMu serializes store writes; written is the newest seq attempted.
	writeMu sync.Mutex
	written uint64
}

type AutosaveOption func(*Autosaver)

// WithClock replaces the wall clock, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) AutosaveOption {
	return func(a *Autosaver) { a.clock = c }
}

func WithWriteTimeout(d time.Duration) AutosaveOption {
	return func(a *Autosaver) { a.writeTimeout = d }
}

func WithMetrics(m *Metrics) AutosaveOption {
	return func(a *Autosaver) { a.metrics = m }
}

func NewAutosaver(store SnapshotStore, key string, debounce time.Duration, opts ...AutosaveOption) *Autosaver {
	a := &Autosaver{
		store:        store,
		key:          key,
		debounce:     debounce,
		writeTimeout: defaultWriteTimeout,
		clock:        clockwork.NewRealClock(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Schedule arms a write of snapshot after the debounce interval, replacing
// any write not yet performed.
func (a *Autosaver) Schedule(snapshot []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.seq++
	seq := a.seq
	a.pending = append([]byte(nil), snapshot...)
	a.timer = a.clock.AfterFunc(a.debounce, func() { a.fire(seq) })
}

// Pending reports whether a write is armed.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush performs the pending write immediately, if there is one, and
// returns once no write is in flight.
func (a *Autosaver) Flush(ctx context.Context) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	data, seq := a.pending, a.seq
	a.pending = nil
	a.mu.Unlock()
	if data != nil {
		a.write(ctx, data, seq)
		return
	}
	// wait out a write started by the timer
	a.writeMu.Lock()
	a.writeMu.Unlock()
}

// Discard drops the pending write and removes the stored snapshot. Writes
// scheduled before the call never reach the store afterwards.
func (a *Autosaver) Discard(ctx context.Context) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.seq++
	seq := a.seq
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	a.written = seq
	if err := a.store.Delete(ctx, a.key); err != nil {
		slog.Warn("autosave delete failed", "key", a.key, "error", err)
		a.metrics.autosaveResult("error")
		return
	}
	a.metrics.autosaveResult("deleted")
}

// Restore reads the stored snapshot. It reports false when nothing is stored or
// the store cannot be read.
func (a *Autosaver) Restore(ctx context.Context) ([]byte, bool) {
	data, err := a.store.Load(ctx, a.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("autosave restore failed", "key", a.key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (a *Autosaver) fire(seq uint64) {
	a.mu.Lock()
	// superseded by a later Schedule or a Flush
	if seq != a.seq || a.pending == nil {
		a.mu.Unlock()
		return
	}
	data := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()
	a.write(ctx, data, seq)
}

// write never reports failure: an unavailable store only means this cycle
// stays in memory. A snapshot older than one already written is dropped.
func (a *Autosaver) write(ctx context.Context, data []byte, seq uint64) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if seq <= a.written {
		slog.Debug("autosave superseded", "key", a.key, "seq", seq)
		return
	}
	a.written = seq
	if err := a.store.Save(ctx, a.key, data); err != nil {
		slog.Warn("autosave write failed", "key", a.key, "error", err)
		a.metrics.autosaveResult("error")
		return
	}
	slog.Debug("autosave written", "key", a.key, "bytes", len(data))
	a.metrics.autosaveResult("ok")
}
