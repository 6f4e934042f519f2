// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cross-messenger/models"
)

// eventEnvelope holds the only fields the client acts on.
type eventEnvelope struct {
	Type   models.PushEventType `json:"type"`
	ChatID models.ID            `json:"chat_id"`
}

// eventDetails holds informational fields, each decoded on its own.
type eventDetails struct {
	Platform   json.RawMessage `json:"platform"`
	SenderName json.RawMessage `json:"sender_name"`
	Text       json.RawMessage `json:"text"`
	Timestamp  json.RawMessage `json:"timestamp"`
}

// decodeEvent parses one text frame. Only a frame that is not a JSON object,
// or whose type/chat_id cannot be read, is rejected with ErrMalformedPayload;
// unknown event types are passed through.
//
// A non-nil detailErr reports informational fields that could not be
// decoded. The event is still usable and those fields are left zero.
func decodeEvent(data []byte) (event models.PushEvent, detailErr error, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.PushEvent{}, nil, fmt.Errorf("%w: not a json object", ErrMalformedPayload)
	}

	var envelope eventEnvelope
	if err = json.Unmarshal(trimmed, &envelope); err != nil {
		return models.PushEvent{}, nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	event = models.PushEvent{
		Type:   envelope.Type,
		ChatID: envelope.ChatID,
		Raw:    append(json.RawMessage(nil), trimmed...),
	}

	var details eventDetails
	if err = json.Unmarshal(trimmed, &details); err != nil {
		return event, fmt.Errorf("event details: %w", err), nil
	}

	var errs []error
	decodeDetail(details.Platform, &event.Platform, "platform", &errs)
	decodeDetail(details.SenderName, &event.SenderName, "sender_name", &errs)
	decodeDetail(details.Text, &event.Text, "text", &errs)
	decodeDetail(details.Timestamp, &event.Timestamp, "timestamp", &errs)

	return event, errors.Join(errs...), nil
}

func decodeDetail[T any](raw json.RawMessage, dst *T, field string, errs *[]error) {
	if len(raw) == 0 {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", field, err))
		return
	}
	*dst = value
}
