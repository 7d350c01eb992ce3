// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secureconnect/secureconnect/internal/logging"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("secureconnect", "1.0.0", "json", &buf)

	logger.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "secureconnect", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "value", entry["key"])
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("secureconnect", "dev", "text", &buf)

	logger.Info("hello")

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=hello"))
	assert.True(t, strings.Contains(out, "service=secureconnect"))
}

func TestSetup_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("secureconnect", "dev", "", &buf)

	logger.Info("hello")

	var entry map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
}
