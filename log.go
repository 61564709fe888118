package rtfdoc

import "github.com/sirupsen/logrus"

// pkgLogger is the logger used to surface recoverable diagnostics as they
// are recorded. Library consumers that don't call SetLogger get a logger at
// ErrorLevel, above the Warn level diagnostics are logged at, so default
// usage never prints anything: diagnostics are read from
// (*Parser).Diagnostics, not from log output.
var pkgLogger logrus.FieldLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}()

// SetLogger overrides the logger used for recoverable-diagnostic warnings.
// Pass a *logrus.Logger with a test hook attached to assert on diagnostics
// without scraping formatted log lines.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	pkgLogger = l
}

func logDiagnostic(d Diagnostic) {
	pkgLogger.WithFields(logrus.Fields{
		"kind":   d.Kind.String(),
		"offset": d.Offset,
	}).Warn(d.Message)
}
