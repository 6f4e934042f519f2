// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"
)

type memorySessionStore struct {
	mu         sync.RWMutex
	credential string
}

// NewMemorySessionStore returns a process-local SessionStore, optionally
// seeded with a credential.
func NewMemorySessionStore(credential string) SessionStore {
	return &memorySessionStore{credential: credential}
}

func (m *memorySessionStore) Get(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential, m.credential != "", nil
}

func (m *memorySessionStore) Set(_ context.Context, credential string) error {
	if credential == "" {
		return ErrEmptyCredential
	}

	m.mu.Lock()
	m.credential = credential
	m.mu.Unlock()
	return nil
}

func (m *memorySessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.credential = ""
	m.mu.Unlock()
	return nil
}
