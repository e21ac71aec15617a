package manager

import (
	"time"

	"github.com/rs/zerolog"

	"sentineld/internal/audit"
	"sentineld/internal/registry"
	"sentineld/internal/schema"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultModelName    = "machine-failure-prediction"
	defaultPollInterval = 300 * time.Second
)

// ManagerConfig encapsulates all tunables and collaborators for Manager
// construction.
type ManagerConfig struct {
	// ModelName is the registry name polled for approved versions.
	ModelName string
	// PollInterval is the period of the background refresh loop.
	PollInterval time.Duration
	// Registry resolves approved versions and artifacts. Required.
	Registry registry.Client
	// Schema resolves the feature column order on every (re)load.
	Schema *schema.Loader
	// Audit receives one record per successful prediction, best-effort.
	Audit audit.Publisher
	// Logger for refresh and serving events.
	Logger zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		modelName: cfg.ModelName,
		interval:  cfg.PollInterval,
		registry:  cfg.Registry,
		schema:    cfg.Schema,
		audit:     cfg.Audit,
		log:       cfg.Logger,
		startTime: time.Now(),
	}
	if m.modelName == "" {
		m.modelName = defaultModelName
	}
	if m.interval <= 0 {
		m.interval = defaultPollInterval
	}
	if m.schema == nil {
		m.schema = schema.NewLoader("", cfg.Logger)
	}
	if m.audit == nil {
		m.audit = audit.Noop{}
	}
	// The slot always holds a valid (possibly empty) snapshot so readers
	// never see nil.
	m.cur.Store(&Snapshot{FeatureOrder: m.schema.Load()})
	return m
}
