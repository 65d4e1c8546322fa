package launcher

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/evalphobia/logrus_sentry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// logLevels maps go-ethereum record levels onto logrus levels.
var logLevels = map[log.Lvl]logrus.Level{
	log.LvlCrit:  logrus.FatalLevel,
	log.LvlError: logrus.ErrorLevel,
	log.LvlWarn:  logrus.WarnLevel,
	log.LvlInfo:  logrus.InfoLevel,
	log.LvlDebug: logrus.DebugLevel,
	log.LvlTrace: logrus.TraceLevel,
}

// newLogger builds the logrus logger every record of the process ends up in.
// When a Sentry DSN is configured, error and critical records are reported
// there as well.
func newLogger(cfg LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.TraceLevel)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, errors.Wrap(err, "sentry hook")
		}
		logger.AddHook(hook)
	}
	return logger, nil
}

// logrusHandler forwards go-ethereum log records to logger. Context pairs
// become logrus fields.
func logrusHandler(logger *logrus.Logger) log.Handler {
	return log.FuncHandler(func(r *log.Record) error {
		fields := make(logrus.Fields, len(r.Ctx)/2)
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			fields[fmt.Sprint(r.Ctx[i])] = r.Ctx[i+1]
		}
		level, ok := logLevels[r.Lvl]
		if !ok {
			level = logrus.InfoLevel
		}
		logger.WithFields(fields).WithTime(r.Time).Log(level, r.Msg)
		return nil
	})
}

// setupLogging routes the go-ethereum root logger through logrus, filtered
// at the configured verbosity.
func setupLogging(cfg LoggingConfig, w io.Writer) error {
	logger, err := newLogger(cfg, w)
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), logrusHandler(logger)))
	return nil
}
