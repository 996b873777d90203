package logger

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from cfg. Debug level uses the development preset,
// every other level the production one; an unknown level is an error.
func New(cfg *Config) (*zap.Logger, error) {
	name := strings.TrimSpace(cfg.Level)
	if name == "" {
		name = "info"
	}
	level, err := zap.ParseAtomicLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	config := zap.NewProductionConfig()
	if level.Level() == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = level

	switch cfg.Format {
	case "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	case "json", "":
		config.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID tags l with the request's ray_id, when the middleware set one.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, _ := c.Locals("ray_id").(string); rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
