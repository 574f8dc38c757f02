// Package logging configures the shared logrus logger used by the CLI
// shell, worker pool, and directory pipeline.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger instance.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetDebug raises or lowers the logger's level.
func SetDebug(enabled bool) {
	if enabled {
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetLevel(logrus.InfoLevel)
}
