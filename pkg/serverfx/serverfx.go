// serverfx/serverfx.go
package serverfx

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/joeydtaylor/dispatch-core/pkg/core"
	"github.com/joeydtaylor/dispatch-core/pkg/dispatch"
	"github.com/joeydtaylor/dispatch-core/pkg/manifest"
	"github.com/joeydtaylor/dispatch-core/pkg/middleware/logger"
	"github.com/joeydtaylor/dispatch-core/pkg/middleware/metrics"
	"github.com/joeydtaylor/dispatch-core/pkg/registry"
	"github.com/joeydtaylor/dispatch-core/pkg/transport/httpx"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	Service         string // service name for logs
	ManifestEnv     string // e.g. "DISPATCH_MANIFEST"
	DefaultManifest string // e.g. "manifest.toml"
	ListenAddrEnv   string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen   string // e.g. ":4000"
	TLSCertEnv      string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv       string // e.g. "SSL_SERVER_KEY"
}

// ---- Configuration phase ----

func provideConfig(opts Options, log *zap.Logger) manifest.Config {
	cfgPath := envOr(opts.ManifestEnv, opts.DefaultManifest)
	cfg, err := core.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("manifest load failed", zap.Error(err), zap.String("path", cfgPath))
	}
	return cfg
}

func provideStore(cfg manifest.Config, log *zap.Logger) *registry.Store {
	store := registry.New()
	if err := core.Apply(store, cfg); err != nil {
		log.Fatal("resource registration failed", zap.Error(err))
	}
	log.Info("resources registered",
		zap.Int("lookups", store.Len(dispatch.ResourceCapability)),
		zap.Int("rules", len(cfg.Resources)),
	)
	return store
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Cfg   manifest.Config
	Store *registry.Store
	LogMW *logger.Middleware

	Metrics http.Handler `name:"metrics"`

	R   httpx.Router
	Log *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(d.Cfg, d.Store, core.BuildDeps{
		LogMW:   d.LogMW,
		Metrics: d.Metrics,
		Router:  d.R,
		Log:     d.Log,
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Opts.ListenAddrEnv, d.Opts.DefaultListen)
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}
			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Opts.Service),
				zap.String("addr", addr),
			)
			go func() {
				srv.TLSConfig = nil
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

func Module(opts Options) fx.Option {
	return fx.Options(
		// Supply options to DI.
		fx.Supply(opts),

		// Logging
		logger.Module,

		// Metrics (named)
		fx.Provide(fx.Annotate(metrics.ProvideMetrics, fx.ResultTags(`name:"metrics"`))),

		// Router implementation
		fx.Provide(httpx.NewChi),

		// Manifest + registration phase
		fx.Provide(provideConfig),
		fx.Provide(provideStore),

		// Router (named "app")
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),

		// App lifecycle (starts the HTTP server)
		fx.Invoke(registerHooks),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
