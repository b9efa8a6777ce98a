// Package serverfx assembles the mcpd HTTP server: config, registry,
// dispatcher, router, and lifecycle.
package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/modelwire/mcpd/internal/config"
	"github.com/modelwire/mcpd/pkg/api"
	"github.com/modelwire/mcpd/pkg/bundlefx"
	"github.com/modelwire/mcpd/pkg/dispatch"
	"github.com/modelwire/mcpd/pkg/manifest"
	"github.com/modelwire/mcpd/pkg/middleware/logger"
	"github.com/modelwire/mcpd/pkg/model"
	"github.com/modelwire/mcpd/pkg/transport/httpx"
)

// Module returns the complete Fx option set for one mcpd instance. catalog
// holds the handler implementations the manifest may bind models to.
func Module(catalog map[string]model.Handler) fx.Option {
	return fx.Options(
		bundlefx.Module,
		fx.Provide(httpx.NewChi),
		fx.Provide(config.Load),
		fx.Provide(func() map[string]model.Handler { return catalog }),
		fx.Provide(provideRegistry),
		fx.Provide(dispatch.New),
		fx.Provide(fx.Annotate(
			provideRouter,
			fx.ParamTags(``, `name:"metrics"`, ``, ``),
			fx.ResultTags(`name:"app"`),
		)),
		fx.Invoke(registerHooks),
	)
}

// ---------- Registry ----------

// provideRegistry builds the immutable model registry from the manifest.
// Ids are bound at startup and never change for the process lifetime.
func provideRegistry(cfg config.Config, catalog map[string]model.Handler, zl *zap.Logger) (*model.Registry, error) {
	known := make(map[string]struct{}, len(catalog))
	for name := range catalog {
		known[name] = struct{}{}
	}

	man, err := manifest.Load(cfg.Manifest, known)
	if err != nil {
		zl.Error("manifest load failed", zap.Error(err), zap.String("path", cfg.Manifest))
		return nil, err
	}

	bindings := make(map[string]model.Handler, len(man.Models))
	for _, m := range man.Models {
		bindings[m.ID] = catalog[m.Handler]
	}
	return model.NewRegistry(bindings), nil
}

// ---------- Router ----------

func provideRouter(
	lm *logger.Middleware,
	/* name:"metrics" */ m http.Handler,
	d *dispatch.Dispatcher,
	r httpx.Router,
) http.Handler {
	return api.BuildRouter(api.BuildDeps{
		LogMW:      lm,
		Metrics:    m,
		Dispatcher: d,
		Router:     r,
	})
}

// ---------- Lifecycle ----------

type serverDeps struct {
	fx.In
	Logger     *zap.Logger
	Dispatcher *dispatch.Dispatcher
	App        http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, cfg config.Config, d serverDeps) {
	srv := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cfg.TLSCertFile) && fileExists(cfg.TLSKeyFile)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", cfg.Service),
					zap.String("addr", cfg.ListenAddress),
					zap.Strings("models", d.Dispatcher.ModelIDs()),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", cfg.Service),
					zap.String("addr", cfg.ListenAddress),
					zap.Strings("models", d.Dispatcher.ModelIDs()),
				)
				go func() {
					srv.TLSConfig = nil
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", cfg.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- tiny helpers ----------

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
