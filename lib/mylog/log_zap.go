package mylog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/storefront/lib/mycontext"
)

type zapLogger struct {
	componentName string
	logger        *zap.Logger
}

func newZapLogger(componentName string, core zapcore.Core) Logger {
	return zapLogger{
		componentName: componentName,
		logger:        zap.New(core).Named(componentName),
	}
}

func (l zapLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{zap.String("component", l.componentName)}
	if traceLabel != "" {
		fields = append(fields, zap.Any("labels", map[string]string{"aggregate": traceLabel}))
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	if ce := l.logger.Check(toLevel(severity), fmt.Sprintf(format, a...)); ce != nil {
		ce.Write(fields...)
	}
}

func toLevel(severity Severity) zapcore.Level {
	switch severity {
	case SeverityDebug:
		return zapcore.DebugLevel
	case SeverityWarn:
		return zapcore.WarnLevel
	case SeverityError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
