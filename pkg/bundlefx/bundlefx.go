// Package bundlefx aggregates the middleware Fx modules.
package bundlefx

import (
	"github.com/modelwire/mcpd/pkg/middleware/logger"
	"github.com/modelwire/mcpd/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provided to fx
var Module = fx.Options(
	logger.Module,
	fx.Provide(fx.Annotate(metrics.ProvideMetrics, fx.ResultTags(`name:"metrics"`))),
)
