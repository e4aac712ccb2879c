package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("production", &buf).Info("started", "port", "8080")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "started", line["msg"])
	assert.Equal(t, "faithconnect", line["service"])
	assert.Equal(t, "8080", line["port"])
}

func TestDevelopmentLoggerWritesText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("development", &buf).Debug("debugging")

	assert.True(t, strings.Contains(buf.String(), "msg=debugging"))
}
