package executor

import "github.com/harrison/treegen/internal/models"

// Logger receives progress events from a Runner
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSkip(skip models.SkipRecord)
	LogSummary(result *models.Result)
}
