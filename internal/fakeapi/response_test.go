// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{name: "object", status: http.StatusOK, data: map[string]int{"n": 1}, wantBody: `{"n":1}`},
		{name: "nil", status: http.StatusOK, data: nil, wantBody: `null`},
		{name: "custom status", status: http.StatusCreated, data: []string{"a"}, wantBody: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			require.NoError(t, writeJSON(rr, tt.status, tt.data))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestWriteJSON_UnencodableData(t *testing.T) {
	rr := httptest.NewRecorder()

	err := writeJSON(rr, http.StatusOK, make(chan int))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestWriteDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	writeDetail(rr, http.StatusNotFound, "Chat not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Chat not found"}`, rr.Body.String())
}
