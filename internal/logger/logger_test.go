package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithOutput(&buf, "debug", true)
	l.WithField("order_id", "221015-123456").Info("order submitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order submitted", entry["msg"])
	assert.Equal(t, "221015-123456", entry["order_id"])
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestNewUnknownLevel(t *testing.T) {
	t.Parallel()

	l := NewWithOutput(&bytes.Buffer{}, "loud", false)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
