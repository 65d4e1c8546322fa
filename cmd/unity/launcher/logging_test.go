package launcher

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"
)

func TestLogrusHandler(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	logger, err := newLogger(LoggingConfig{Format: "json"}, &buf)
	require.NoError(err)

	l := log.New()
	l.SetHandler(logrusHandler(logger))
	l.Warn("Discarded block", "number", 7, "reason", "arity")

	var entry map[string]interface{}
	require.NoError(json.Unmarshal(buf.Bytes(), &entry))
	require.Equal("Discarded block", entry["msg"])
	require.Equal("warning", entry["level"])
	require.Equal(float64(7), entry["number"])
	require.Equal("arity", entry["reason"])
}

func TestLogrusHandlerFiltersVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(LoggingConfig{Format: "text"}, &buf)
	require.NoError(t, err)

	l := log.New()
	l.SetHandler(log.LvlFilterHandler(log.LvlInfo, logrusHandler(logger)))
	l.Debug("hidden")
	require.Zero(t, buf.Len())

	l.Info("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewLoggerRejectsFormat(t *testing.T) {
	_, err := newLogger(LoggingConfig{Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}
