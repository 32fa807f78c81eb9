package render

import (
	"log/slog"

	"github.com/taigrr/chart3d/pkg/series"
)

// logger shares the chart engine logger configured by series.SetLogger.
func logger() *slog.Logger {
	return series.Logger()
}
