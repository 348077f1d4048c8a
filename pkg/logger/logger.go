package logger

import (
	"os"

	"go.uber.org/zap"
)

// Init builds the process-wide zap logger and installs it as the global
// (zap.L()). Services and repositories log through the global the same
// way request middleware logs through fiber.
func Init() (*zap.Logger, error) {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
