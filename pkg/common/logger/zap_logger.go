package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fundsplit/pkg/common/iface"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger emits one JSON record per message. Format arguments are applied
// before logging and the actor is attached as a field.
type ZapLogger struct {
	log *zap.SugaredLogger
}

func NewZapLogger(out io.Writer, verbose bool) *ZapLogger {
	if out == nil {
		out = os.Stdout
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(out), level)

	return &ZapLogger{log: zap.New(core).Sugar()}
}

func clean(msg string, args ...any) string {
	return strings.Trim(fmt.Sprintf(msg, args...), "\n")
}

func (l *ZapLogger) TitleWithActor(actor iface.Actor, msg string, args ...any) {
	msg = clean(msg, args...)
	if msg == "" {
		return
	}
	l.log.Infow(msg, "actor", string(actor), "title", true)
}

func (l *ZapLogger) InfoWithActor(actor iface.Actor, msg string, args ...any) {
	msg = clean(msg, args...)
	if msg == "" {
		return
	}
	l.log.Infow(msg, "actor", string(actor))
}

func (l *ZapLogger) WarnWithActor(actor iface.Actor, msg string, args ...any) {
	msg = clean(msg, args...)
	if msg == "" {
		return
	}
	l.log.Warnw(msg, "actor", string(actor))
}

func (l *ZapLogger) ErrorWithActor(actor iface.Actor, msg string, args ...any) {
	msg = clean(msg, args...)
	if msg == "" {
		return
	}
	l.log.Errorw(msg, "actor", string(actor))
}

func (l *ZapLogger) DebugWithActor(actor iface.Actor, msg string, args ...any) {
	msg = clean(msg, args...)
	if msg == "" {
		return
	}
	l.log.Debugw(msg, "actor", string(actor))
}

func (l *ZapLogger) Title(msg string, args ...any) {
	l.TitleWithActor(iface.ActorSystem, msg, args...)
}

func (l *ZapLogger) Info(msg string, args ...any) {
	l.InfoWithActor(iface.ActorSystem, msg, args...)
}

func (l *ZapLogger) Warn(msg string, args ...any) {
	l.WarnWithActor(iface.ActorSystem, msg, args...)
}

func (l *ZapLogger) Error(msg string, args ...any) {
	l.ErrorWithActor(iface.ActorSystem, msg, args...)
}

func (l *ZapLogger) Debug(msg string, args ...any) {
	l.DebugWithActor(iface.ActorSystem, msg, args...)
}

// Sync flushes buffered records.
func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}
