package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sentineld/internal/model"
	"sentineld/internal/registry"
)

// RefreshOnce runs one refresh cycle against the registry. Infrastructure
// failures are absorbed here: they are logged and recorded, the previous
// snapshot stays current, and nothing propagates to the caller. Traffic
// being served from the last known-good model is never affected by a
// registry outage.
func (m *Manager) RefreshOnce(ctx context.Context) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("refresh cycle panicked")
			m.setLastErr(fmt.Sprintf("refresh panic: %v", r))
		}
	}()

	if err := m.refresh(ctx); err != nil {
		m.setLastErr(err.Error())
		m.log.Error().Err(err).Msg("failed to refresh model from registry")
	} else {
		m.setLastErr("")
	}
	m.lastRefresh.Store(time.Now().Unix())
}

// refresh performs the version check and, when needed, the swap.
func (m *Manager) refresh(ctx context.Context) error {
	version, err := m.registry.ApprovedVersion(ctx, m.modelName)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			m.log.Warn().Str("model", m.modelName).Msg("no approved model version in registry")
			return nil
		}
		return fmt.Errorf("query approved version: %w", err)
	}

	cur := m.Current()
	if cur.Loaded() && cur.Version == version {
		// Already up to date; skip the artifact download.
		return nil
	}

	m.log.Info().Str("version", version).Msg("found new model version, loading")
	data, err := m.registry.FetchArtifact(ctx, m.modelName, version)
	if err != nil {
		return fmt.Errorf("fetch artifact v%s: %w", version, err)
	}

	// Re-resolve the schema together with the artifact so the triple is
	// built from one consistent view.
	order := m.schema.Load()
	predictor, err := model.Decode(data, order)
	if err != nil {
		return fmt.Errorf("decode artifact v%s: %w", version, err)
	}

	m.cur.Store(&Snapshot{Model: predictor, Version: version, FeatureOrder: order})
	m.updates.Add(1)
	modelUpdatesTotal.Inc()
	m.log.Info().
		Str("version", version).
		Str("checksum", model.Checksum(data)).
		Int("features", len(order)).
		Msg("switched to new model")
	return nil
}

// Run invokes RefreshOnce immediately, then repeats on the configured
// period until ctx is cancelled. It is the only writer of the snapshot
// slot and runs on its own goroutine, independent of request handling.
func (m *Manager) Run(ctx context.Context) {
	m.RefreshOnce(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("refresh loop stopped")
			return
		case <-ticker.C:
			m.RefreshOnce(ctx)
		}
	}
}
