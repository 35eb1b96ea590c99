package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxsml/siggn"
	"github.com/fxsml/siggn/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerolog(t *testing.T) {
	t.Parallel()

	t.Run("levels and fields", func(t *testing.T) {
		var buf bytes.Buffer
		log := logging.Zerolog(zerolog.New(&buf))

		log.Debug("SIGGN: Delivered", "type", "increment_count", "listeners", 2)
		log.Error("SIGGN: Failed", "error", errors.New("boom"), slog.String("bus", "cart"))

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "debug", lines[0]["level"])
		assert.Equal(t, "SIGGN: Delivered", lines[0]["message"])
		assert.Equal(t, "increment_count", lines[0]["type"])
		assert.Equal(t, float64(2), lines[0]["listeners"])

		assert.Equal(t, "error", lines[1]["level"])
		assert.Equal(t, "boom", lines[1]["error"])
		assert.Equal(t, "cart", lines[1]["bus"])
	})

	t.Run("disabled levels are skipped", func(t *testing.T) {
		var buf bytes.Buffer
		log := logging.Zerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))

		log.Debug("a")
		log.Info("b")
		log.Warn("c")

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "c", lines[0]["message"])
	})

	t.Run("dangling key", func(t *testing.T) {
		var buf bytes.Buffer
		logging.Zerolog(zerolog.New(&buf)).Info("x", "orphan")

		lines := decodeLines(t, &buf)
		assert.Equal(t, "orphan", lines[0]["!BADKEY"])
	})

	t.Run("as bus logger", func(t *testing.T) {
		var buf bytes.Buffer
		bus := siggn.New[siggn.Message](siggn.Config{Name: "cart", Logger: logging.Zerolog(zerolog.New(&buf))})
		bus.Unsubscribe("nobody")
		bus.Subscribe("a", "x", nil)
		bus.Unsubscribe("a")

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "SIGGN: Unsubscribed", lines[0]["message"])
		assert.Equal(t, "cart", lines[0]["bus"])
	})
}

func TestLogrus(t *testing.T) {
	t.Parallel()

	t.Run("levels and fields", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		log := logging.Logrus(logger)

		log.Debug("SIGGN: Delivered", "type", "increment_count")
		log.Warn("SIGGN: Dropped", slog.Int("count", 3))
		log.Info("plain")

		entries := hook.AllEntries()
		require.Len(t, entries, 3)
		assert.Equal(t, logrus.DebugLevel, entries[0].Level)
		assert.Equal(t, "SIGGN: Delivered", entries[0].Message)
		assert.Equal(t, "increment_count", entries[0].Data["type"])
		assert.Equal(t, logrus.WarnLevel, entries[1].Level)
		assert.Equal(t, int64(3), entries[1].Data["count"])
		assert.Empty(t, entries[2].Data)
	})

	t.Run("entries keep their fields", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		log := logging.Logrus(logger.WithField("component", "cart"))

		log.Error("SIGGN: Failed", "error", errors.New("boom"))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "cart", entry.Data["component"])
		assert.EqualError(t, entry.Data["error"].(error), "boom")
	})
}
