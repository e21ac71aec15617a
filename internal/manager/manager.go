package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"sentineld/internal/audit"
	"sentineld/internal/registry"
	"sentineld/internal/schema"
	"sentineld/pkg/types"
)

// Manager owns the live model state and the refresh loop that keeps it
// fresh. There is exactly one writer (the refresh path) and any number of
// concurrent readers.
type Manager struct {
	modelName string
	interval  time.Duration
	registry  registry.Client
	schema    *schema.Loader
	audit     audit.Publisher
	log       zerolog.Logger

	// cur is the single shared mutable slot. Replaced wholesale on every
	// successful version-changing refresh, never edited in place.
	cur atomic.Pointer[Snapshot]

	// refreshMu serializes refresh cycles so they never overlap.
	refreshMu sync.Mutex

	updates     atomic.Uint64
	lastRefresh atomic.Int64 // unix seconds, 0 until the first completed cycle

	errMu   sync.Mutex
	lastErr string

	startTime time.Time
}

// New constructs a Manager with package defaults for name and interval.
func New(reg registry.Client, sl *schema.Loader, sink audit.Publisher, log zerolog.Logger) *Manager {
	return NewWithConfig(ManagerConfig{Registry: reg, Schema: sl, Audit: sink, Logger: log})
}

// Current returns the serving snapshot at call time. It never blocks, in
// particular not on an in-flight refresh; the returned reference stays
// internally consistent regardless of later swaps.
func (m *Manager) Current() *Snapshot {
	return m.cur.Load()
}

// Ready reports whether a model is loaded and serving.
func (m *Manager) Ready() bool {
	return m.Current().Loaded()
}

// State reports the manager lifecycle state.
func (m *Manager) State() State {
	if m.Ready() {
		return StateReady
	}
	return StateDegraded
}

// Health builds the /health payload and counts the check.
func (m *Manager) Health() types.HealthResponse {
	healthChecksTotal.Inc()
	snap := m.Current()
	status := "ok"
	if !snap.Loaded() {
		status = "loading_or_error"
	}
	return types.HealthResponse{Status: status, ModelVersion: snap.Version}
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	snap := m.Current()
	m.errMu.Lock()
	lastErr := m.lastErr
	m.errMu.Unlock()
	now := time.Now()
	return types.StatusResponse{
		State:           string(m.State()),
		ModelVersion:    snap.Version,
		FeatureCount:    len(snap.FeatureOrder),
		UpdatesApplied:  m.updates.Load(),
		LastRefreshUnix: m.lastRefresh.Load(),
		LastError:       lastErr,
		UptimeSeconds:   int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:  now.Unix(),
	}
}

func (m *Manager) setLastErr(msg string) {
	m.errMu.Lock()
	m.lastErr = msg
	m.errMu.Unlock()
}
