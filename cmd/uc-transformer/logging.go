package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uc-transformer/internal/plan"
	"uc-transformer/internal/transform"
)

var logger = zap.NewNop()

// setupLogging installs a stderr logger in every package. Without verbose
// only warnings and errors are logged.
func setupLogging(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true

	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableCaller = true
	}

	l, err := cfg.Build()
	if err != nil {
		return
	}

	logger = l
	transform.SetLogger(l.Named("transform"))
	plan.SetLogger(l.Named("plan"))
}

func syncLogging() {
	_ = logger.Sync()
}
