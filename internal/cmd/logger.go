package cmd

import (
	"github.com/harrison/treegen/internal/executor"
	"github.com/harrison/treegen/internal/models"
)

// multiLogger implements executor.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []executor.Logger
}

// LogDebug forwards to all loggers
func (ml *multiLogger) LogDebug(message string) {
	for _, logger := range ml.loggers {
		logger.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *multiLogger) LogInfo(message string) {
	for _, logger := range ml.loggers {
		logger.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, logger := range ml.loggers {
		logger.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *multiLogger) LogError(message string) {
	for _, logger := range ml.loggers {
		logger.LogError(message)
	}
}

// LogSkip forwards to all loggers
func (ml *multiLogger) LogSkip(skip models.SkipRecord) {
	for _, logger := range ml.loggers {
		logger.LogSkip(skip)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(result *models.Result) {
	for _, logger := range ml.loggers {
		logger.LogSummary(result)
	}
}
