// bundlefx/bundlefx.go
package bundlefx

import (
	"go.uber.org/fx"

	"github.com/joeydtaylor/dispatch-core/pkg/middleware/logger"
	"github.com/joeydtaylor/dispatch-core/pkg/middleware/metrics"
)

// Module provided to fx
var Module = fx.Options(
	logger.Module,
	metrics.Module,
)
