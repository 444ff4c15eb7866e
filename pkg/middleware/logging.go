package middleware

import (
	"log/slog"

	"github.com/vango-dev/showcase/pkg/router"
)

// Logging returns an after hook that logs every navigation. Successful
// navigations are logged at debug level, failures at info level.
func Logging(logger *slog.Logger) router.AfterHook {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "navigation")

	return func(to, from *router.Route, err error) {
		attrs := []any{"to", routeLabel(to)}
		if to != nil {
			attrs = append(attrs, "path", to.FullPath)
		}
		if from != nil {
			attrs = append(attrs, "from", from.Name)
		}
		if err != nil {
			logger.Info("navigation failed", append(attrs, "reason", failureReason(err), "error", err)...)
			return
		}
		logger.Debug("navigated", attrs...)
	}
}
