// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &ServerError{
		Status: resp.StatusCode(),
		Detail: parseDetail(resp.StatusCode(), resp.Body()),
	}
}

// mapTransportError marks err as a network failure. The original error stays
// in the chain so that context.Canceled and net errors remain matchable.
func mapTransportError(operation string, err error) error {
	return fmt.Errorf("%s: %w: %w", operation, ErrNetwork, err)
}

// parseDetail extracts the reason from a {"detail": ...} body. Validation
// failures carry a list of {"msg": ...} objects instead of a string.
func parseDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}

	return http.StatusText(status)
}

// outcomeOf classifies err for the gateway request counter.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case IsUnauthorized(err):
		return metrics.OutcomeUnauthorized
	case isServerError(err):
		return metrics.OutcomeServerError
	case isNetworkError(err):
		return metrics.OutcomeNetwork
	default:
		return metrics.OutcomeDecode
	}
}
