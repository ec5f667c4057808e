package driver

import (
	log "github.com/sirupsen/logrus"

	"github.com/wasmconform/harness/internal/capability"
)

// LogrusLogger adapts a *logrus.Logger to capability.Logger, backed by
// logrus the way the teacher's own packages that want structured, leveled
// output do (e.g. Consensys-go-corset's pkg/util, which imports logrus
// under the conventional `log` alias).
type LogrusLogger struct {
	entry *log.Entry
}

// NewLogger builds a LogrusLogger. If base is nil, log.StandardLogger() is used.
func NewLogger(base *log.Logger) LogrusLogger {
	if base == nil {
		base = log.StandardLogger()
	}
	return LogrusLogger{entry: log.NewEntry(base)}
}

// WithField returns a copy of l scoped with an extra field, for tagging log
// lines with the script file or directive index currently executing.
func (l LogrusLogger) WithField(key string, value interface{}) LogrusLogger {
	return LogrusLogger{entry: l.entry.WithField(key, value)}
}

// Infof implements capability.Logger.
func (l LogrusLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

var _ capability.Logger = LogrusLogger{}
