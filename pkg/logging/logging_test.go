package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/lgeparse/pkg/config"
)

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		level string
		want  logrus.Level
	}{
		{level: "", want: logrus.InfoLevel},
		{level: "debug", want: logrus.DebugLevel},
		{level: "info", want: logrus.InfoLevel},
		{level: "warn", want: logrus.WarnLevel},
		{level: "WARNING", want: logrus.WarnLevel},
		{level: "error", want: logrus.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			logger, err := New(config.Logging{Level: tc.level, Format: FormatText}, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestNew_RejectsUnknownValues(t *testing.T) {
	_, err := New(config.Logging{Level: "trace-all"}, nil)
	assert.Error(t, err)

	_, err = New(config.Logging{Level: "info", Format: "xml"}, nil)
	assert.Error(t, err)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "info", Format: FormatJSON}, &buf)
	require.NoError(t, err)

	logger.WithField("teams", 28).Info("parse finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parse finished", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(28), entry["teams"])
}

func TestNew_TextFormatFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.Logging{Level: "warn", Format: FormatText}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
