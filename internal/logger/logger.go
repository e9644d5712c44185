package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/citystats/citystats-service/internal/pkg/context"
)

var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

func InitWithWriter(w io.Writer) {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	format := os.Getenv("LOG_FORMAT") // "json" or "console"
	if format == "" {
		format = "console"
	}

	if format == "json" {
		Logger = zerolog.New(w).With().Timestamp().Logger().Level(level)
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(level)
	}

	// set global
	zlog.Logger = Logger
}

// WithCtx returns the logger tagged with the request id and resolved place
// carried by ctx, if any.
func WithCtx(ctx context.Context) *zerolog.Logger {
	reqID, place := appCtx.RequestID(ctx), appCtx.Place(ctx)
	if reqID == "" && place == "" {
		return &Logger
	}
	c := Logger.With()
	if reqID != "" {
		c = c.Str("request_id", reqID)
	}
	if place != "" {
		c = c.Str("place", place)
	}
	l := c.Logger()
	return &l
}
