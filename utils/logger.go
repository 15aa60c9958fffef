package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Logger returns the shared application logger.
func Logger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		if os.Getenv("LOG_LEVEL") == "debug" {
			logger.SetLevel(logrus.DebugLevel)
		}
	}
	return logger
}
