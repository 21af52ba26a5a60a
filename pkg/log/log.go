package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

const (
	HttpXRequestId = "X-Request-Id"
	CtxRequestId   = "requestId"
)

type ctxKey string

const requestIdKey ctxKey = CtxRequestId

func InitLog(logLevel string) {
	InitLogWithOutput(logLevel, os.Stdout)
}

func InitLogWithOutput(logLevel string, out io.Writer) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Errorf("failed to parse log level: %v, err: %v", logLevel, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(true)
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
		DisableQuote:    true,
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
	})
}

// WithRequestId returns a copy of ctx carrying the request id picked up by GetLogger.
func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKey, requestId)
}

func GetLogger(c context.Context) *logrus.Entry {
	if c != nil {
		if v := c.Value(requestIdKey); v != nil {
			return logrus.WithFields(logrus.Fields{
				CtxRequestId: v,
			})
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func NewLogger() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// Component returns the standard logger tagged with the given component name.
func Component(name string) *logrus.Entry {
	return NewLogger().WithField("component", name)
}
