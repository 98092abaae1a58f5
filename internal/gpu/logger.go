package gpu

import (
	"log/slog"

	"github.com/gogpu/gesso"
)

// slogger returns the module-wide logger configured via gesso.SetLogger.
func slogger() *slog.Logger { return gesso.Logger() }
