// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cross-messenger/models"
)

func TestDecodeEvent(t *testing.T) {
	t.Run("message new", func(t *testing.T) {
		event, detailErr, err := decodeEvent([]byte(`{"type":"message:new","chat_id":42,"platform":"telegram","text":"hi"}`))
		require.NoError(t, err)
		require.NoError(t, detailErr)
		assert.Equal(t, models.PushEventMessageNew, event.Type)
		assert.Equal(t, models.ID("42"), event.ChatID)
		assert.Equal(t, models.PlatformTelegram, event.Platform)
		assert.Equal(t, "hi", event.Text)
		assert.JSONEq(t, `{"type":"message:new","chat_id":42,"platform":"telegram","text":"hi"}`, string(event.Raw))
	})

	t.Run("unknown type passes through", func(t *testing.T) {
		event, _, err := decodeEvent([]byte(`{"type":"typing"}`))
		require.NoError(t, err)
		assert.Equal(t, models.PushEventType("typing"), event.Type)
	})

	t.Run("numeric zone offset", func(t *testing.T) {
		event, detailErr, err := decodeEvent([]byte(`{"type":"message:new","chat_id":"42","timestamp":"2024-01-01T12:00:00.123+0000"}`))
		require.NoError(t, err)
		require.NoError(t, detailErr)
		want := time.Date(2024, 1, 1, 12, 0, 0, 123_000_000, time.UTC)
		assert.True(t, want.Equal(event.Timestamp.Time), "got %v", event.Timestamp.Time)
	})

	for name, frame := range map[string]string{
		"bad timestamp":   `{"type":"message:new","chat_id":"42","timestamp":"next tuesday"}`,
		"non-string text": `{"type":"message:new","chat_id":"42","text":17,"sender_name":"Bob"}`,
		"object sender":   `{"type":"message:new","chat_id":"42","sender_name":{"first":"Bob"},"text":"hi"}`,
	} {
		t.Run(name+" keeps event", func(t *testing.T) {
			event, detailErr, err := decodeEvent([]byte(frame))
			require.NoError(t, err)
			assert.Error(t, detailErr)
			assert.Equal(t, models.PushEventMessageNew, event.Type)
			assert.Equal(t, models.ID("42"), event.ChatID)
		})
	}

	t.Run("readable details survive a bad one", func(t *testing.T) {
		event, detailErr, err := decodeEvent([]byte(`{"type":"message:new","chat_id":"42","text":17,"sender_name":"Bob"}`))
		require.NoError(t, err)
		assert.ErrorContains(t, detailErr, "text")
		assert.Equal(t, "Bob", event.SenderName)
		assert.Empty(t, event.Text)
	})

	for name, frame := range map[string]string{
		"not json":    "hello",
		"truncated":   `{"type":`,
		"array":       `[1,2]`,
		"string":      `"message:new"`,
		"empty":       "",
		"object type": `{"type":{"name":"message:new"},"chat_id":"42"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := decodeEvent([]byte(frame))
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}
