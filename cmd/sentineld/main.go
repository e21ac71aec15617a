package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sentineld/internal/audit"
	"sentineld/internal/config"
	"sentineld/internal/httpapi"
	"sentineld/internal/manager"
	"sentineld/internal/registry"
	"sentineld/internal/schema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func newRootCmd() *cobra.Command {
	var configPath string
	cfg := config.Config{}

	root := &cobra.Command{
		Use:           "sentineld",
		Short:         "Machine failure risk serving daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileCfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = merge(fileCfg, cfg, cmd)
			}
			return run(cfg)
		},
	}

	// Flags with environment variable defaults
	root.Flags().StringVar(&cfg.Addr, "addr", envStr("SENTINELD_ADDR", ":8000"), "HTTP listen address, e.g. :8000")
	root.Flags().StringVar(&cfg.RegistryURL, "registry-url", envStr("SENTINELD_REGISTRY_URL", ""), "Model registry base URL (empty runs without a registry)")
	root.Flags().StringVar(&cfg.RegistryAlias, "registry-alias", envStr("SENTINELD_REGISTRY_ALIAS", "production"), "Registry alias resolved to the approved model version")
	root.Flags().StringVar(&cfg.ModelName, "model-name", envStr("SENTINELD_MODEL_NAME", "machine-failure-prediction"), "Registered model name to poll")
	root.Flags().IntVar(&cfg.PollIntervalSeconds, "poll-interval", envInt("SENTINELD_POLL_INTERVAL", 300), "Seconds between registry refresh cycles")
	root.Flags().StringVar(&cfg.FeatureSchemaPath, "features-path", envStr("SENTINELD_FEATURES_PATH", ""), "Path to the feature_list.json artifact (empty uses the built-in order)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", envStr("SENTINELD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.Flags().StringVar(&cfg.Audit.Endpoint, "audit-endpoint", envStr("SENTINELD_AUDIT_ENDPOINT", ""), "S3-compatible endpoint for audit logs")
	root.Flags().StringVar(&cfg.Audit.Bucket, "audit-bucket", envStr("SENTINELD_AUDIT_BUCKET", ""), "Audit log bucket (empty disables audit shipping)")
	root.Flags().StringVar(&cfg.Audit.AccessKey, "audit-access-key", envStr("SENTINELD_AUDIT_ACCESS_KEY", ""), "Audit store access key")
	root.Flags().StringVar(&cfg.Audit.SecretKey, "audit-secret-key", envStr("SENTINELD_AUDIT_SECRET_KEY", ""), "Audit store secret key")
	root.Flags().BoolVar(&cfg.Audit.UseSSL, "audit-ssl", envInt("SENTINELD_AUDIT_SSL", 1) != 0, "Use TLS for the audit store")
	root.Flags().StringVar(&configPath, "config", envStr("SENTINELD_CONFIG", ""), "Optional config file (.yaml/.json/.toml); flags override it")

	return root
}

// merge overlays explicitly-set flags on top of the config file values.
func merge(file, flags config.Config, cmd *cobra.Command) config.Config {
	out := file
	if cmd.Flags().Changed("addr") {
		out.Addr = flags.Addr
	}
	if cmd.Flags().Changed("registry-url") {
		out.RegistryURL = flags.RegistryURL
	}
	if cmd.Flags().Changed("registry-alias") {
		out.RegistryAlias = flags.RegistryAlias
	}
	if cmd.Flags().Changed("model-name") {
		out.ModelName = flags.ModelName
	}
	if cmd.Flags().Changed("poll-interval") {
		out.PollIntervalSeconds = flags.PollIntervalSeconds
	}
	if cmd.Flags().Changed("features-path") {
		out.FeatureSchemaPath = flags.FeatureSchemaPath
	}
	if cmd.Flags().Changed("log-level") {
		out.LogLevel = flags.LogLevel
	}
	if cmd.Flags().Changed("audit-endpoint") {
		out.Audit.Endpoint = flags.Audit.Endpoint
	}
	if cmd.Flags().Changed("audit-bucket") {
		out.Audit.Bucket = flags.Audit.Bucket
	}
	if cmd.Flags().Changed("audit-access-key") {
		out.Audit.AccessKey = flags.Audit.AccessKey
	}
	if cmd.Flags().Changed("audit-secret-key") {
		out.Audit.SecretKey = flags.Audit.SecretKey
	}
	if cmd.Flags().Changed("audit-ssl") {
		out.Audit.UseSSL = flags.Audit.UseSSL
	}
	return out
}

func run(cfg config.Config) error {
	// Backstop defaults for fields a sparse config file may leave unset.
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.RegistryAlias == "" {
		cfg.RegistryAlias = "production"
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "machine-failure-prediction"
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 300
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info().Str("addr", cfg.Addr).Str("model", cfg.ModelName).Msg("starting sentineld")

	// Registry client: HTTP against the configured registry, or an empty
	// static client so the service still boots (degraded) without one.
	var reg registry.Client
	if cfg.RegistryURL != "" {
		reg = registry.NewHTTPClient(cfg.RegistryURL, cfg.RegistryAlias)
	} else {
		logger.Warn().Msg("no registry configured, serving degraded until one is provided")
		reg = registry.NewStatic("", nil)
	}

	// Audit sink: object store when a bucket is configured, otherwise drop.
	var sink audit.Publisher = audit.Noop{}
	var dispatcher *audit.Dispatcher
	if cfg.Audit.Bucket != "" {
		objectSink, err := audit.NewObjectSink(audit.ObjectSinkConfig{
			Endpoint:  cfg.Audit.Endpoint,
			AccessKey: cfg.Audit.AccessKey,
			SecretKey: cfg.Audit.SecretKey,
			Bucket:    cfg.Audit.Bucket,
			UseSSL:    cfg.Audit.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("audit sink: %w", err)
		}
		dispatcher = audit.NewDispatcher(objectSink, logger, cfg.Audit.QueueDepth)
		sink = dispatcher
	}

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		ModelName:    cfg.ModelName,
		PollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
		Registry:     reg,
		Schema:       schema.NewLoader(cfg.FeatureSchemaPath, logger),
		Audit:        sink,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First refresh runs synchronously inside the loop goroutine; a dead
	// registry only means starting degraded, never failing boot.
	go mgr.Run(ctx)

	httpapi.SetLogger(logger)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(mgr)}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("sentineld listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if dispatcher != nil {
		dispatcher.Close()
	}
	logger.Info().Msg("sentineld stopped")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
