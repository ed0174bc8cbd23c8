package speech

import (
	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}
