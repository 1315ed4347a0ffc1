// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_SetsGlobals(t *testing.T) {
	l := NewLogger("invsync")
	require.NotNil(t, l)
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewWithWriter_RoleAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	configureGlobals()
	l := newWithWriter(&buf, "mirror")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "mirror", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "mirror").Component("fetch_scheduler")

	l.Warn().Msg("queue stalled")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "fetch_scheduler", entry["component"])
	assert.Equal(t, "mirror", entry["role"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newWithWriter(&buf, "parent-role")

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent-role", entry["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("no logger attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached logger is returned", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("call_id", "42").Logger()
		ctx := zl.WithContext(context.Background())

		FromContext(ctx).Info().Msg("from context")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "42", entry["call_id"])
	})
}
