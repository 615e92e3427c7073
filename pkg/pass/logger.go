package pass

import "github.com/sirupsen/logrus"

// Logger is the logging interface passes write to. Passes never print
// to stdout directly.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type noOpLogger struct{}

// NewNoOpLogger returns a logger that discards everything. Useful in
// tests and as the context default.
func NewNoOpLogger() Logger { return noOpLogger{} }

func (noOpLogger) Debug(string, ...interface{}) {}
func (noOpLogger) Info(string, ...interface{})  {}
func (noOpLogger) Warn(string, ...interface{})  {}
func (noOpLogger) Error(string, ...interface{}) {}

type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrusLogger adapts a logrus logger to the pass Logger interface.
// Passing nil uses the logrus standard logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Debug(format string, args ...interface{}) { g.l.Debugf(format, args...) }
func (g *logrusLogger) Info(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g *logrusLogger) Warn(format string, args ...interface{})  { g.l.Warnf(format, args...) }
func (g *logrusLogger) Error(format string, args ...interface{}) { g.l.Errorf(format, args...) }
