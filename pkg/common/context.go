package common

import (
	"context"

	"fundsplit/pkg/common/iface"
	"fundsplit/pkg/common/logger"
)

type loggerKey struct{}
type settingsKey struct{}
type envConfigKey struct{}

func WithLogger(ctx context.Context, l iface.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFromContext falls back to a plain stdout logger.
func LoggerFromContext(ctx context.Context) iface.Logger {
	if l, ok := ctx.Value(loggerKey{}).(iface.Logger); ok {
		return l
	}
	return logger.NewLogger(false)
}

func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// SettingsFromContext falls back to the embedded defaults.
func SettingsFromContext(ctx context.Context) *Settings {
	if s, ok := ctx.Value(settingsKey{}).(*Settings); ok {
		return s
	}
	return DefaultSettings()
}

func WithEnvConfig(ctx context.Context, cfg *EnvConfig) context.Context {
	return context.WithValue(ctx, envConfigKey{}, cfg)
}

func EnvConfigFromContext(ctx context.Context) (*EnvConfig, bool) {
	cfg, ok := ctx.Value(envConfigKey{}).(*EnvConfig)
	return cfg, ok
}
