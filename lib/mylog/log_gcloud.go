package mylog

import (
	"os"

	"go.uber.org/zap/zapcore"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

// Cloud Logging parses single-line JSON written to stdout. A timestamp is added when
// shipping logs, so it is left out here.
func newGcloudLogger(componentName string) Logger {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		NameKey:        "logger",
		EncodeLevel:    gcloudSeverityEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stdout), zapcore.InfoLevel)

	return newZapLogger(componentName, core)
}

func gcloudSeverityEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString(string(SeverityDebug))
	case zapcore.InfoLevel:
		enc.AppendString(string(SeverityInfo))
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	default:
		enc.AppendString(string(SeverityError))
	}
}
