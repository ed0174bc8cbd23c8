package error_notificator

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

// LogInfra — запасной вариант, когда телеграм не настроен
type LogInfra struct {
	log *logger.ZapLogger
}

func NewLogInfra(log *logger.ZapLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(_ context.Context, source string, err error, details string) error {
	i.log.Log(logger.LogEntry{
		Level:   "warn",
		Message: "[error_notificator] " + source + " " + details,
		Error:   err,
	})
	return nil
}
