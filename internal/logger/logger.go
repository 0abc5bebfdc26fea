package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logs go to stderr; stdout carries command output.
var defaultLogger = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		DisableTimestamp: true,
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.WarnLevel,
}

// SetLevel changes the minimum level that is written.
func SetLevel(level logrus.Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// Debug logs message with optional fields at Debug level.
func Debug(msg string, fields logrus.Fields) {
	defaultLogger.WithFields(fields).Debugln(msg)
}

// Error logs errors at Error level.
func Error(err error) {
	defaultLogger.Errorln(err)
}

// Fatal logs errors at Fatal level.
func Fatal(err error) {
	defaultLogger.Fatalln(err)
}
