package app

import (
	"log/slog"

	"github.com/treykane/text-utils/internal/logging"
	"github.com/treykane/text-utils/internal/toast"
)

// appLog is the package-level structured logger for the app package.
//
// The log level is controlled by TEXTUTILS_LOG_LEVEL and output goes to the
// file named by TEXTUTILS_LOG_FILE when set, so log lines never land on top
// of the alt-screen UI.
var appLog = logging.New("app")

// setStatusError reports a failure to the user as an error toast and the
// footer status, and logs it with full context.
//
// Usage:
//
//	m.setStatusError("Failed to copy", err)
//	m.setStatusError("Export failed", err, "path", path)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.notify(toast.Error, status)
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
