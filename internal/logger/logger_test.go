package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", &buf)
	defer Setup("info", nil)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))

	WithContext(ctx).WithField("entity_id", 7).Info("entity created")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, float64(7), line["entity_id"])
	assert.Equal(t, "entity created", line["msg"])
}

func TestWithContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", &buf)
	defer Setup("info", nil)

	WithContext(context.Background()).Info("no id")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, ok := line["request_id"]
	assert.False(t, ok)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
