package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the shared application logger.
func New() *logrus.Logger {
	var log = logrus.New()
	log.Formatter = new(logrus.TextFormatter)
	log.Formatter.(*logrus.TextFormatter).FullTimestamp = true
	log.Level = logrus.InfoLevel
	log.Out = os.Stdout
	return log
}
