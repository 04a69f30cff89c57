package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// RouteLibraryLogs sends discordgo's own log output to logger instead of the standard logger
func RouteLibraryLogs(logger *zap.Logger) {
	discordgo.Logger = func(level, _ int, format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		switch level {
		case discordgo.LogError:
			logger.Error(msg)
		case discordgo.LogWarning:
			logger.Warn(msg)
		case discordgo.LogInformational:
			logger.Info(msg)
		default:
			logger.Debug(msg)
		}
	}
}
