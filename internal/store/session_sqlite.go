// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
)

// sqliteSessionStore persists the credential in the client_state table and
// keeps a copy in memory so that the per-request Get does not hit the disk.
type sqliteSessionStore struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	loaded bool
	cached string
}

// NewSQLiteSessionStore returns a SessionStore backed by db. The schema must
// already be migrated.
func NewSQLiteSessionStore(db *DB, log *logger.Logger) SessionStore {
	return &sqliteSessionStore{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

func (s *sqliteSessionStore) Get(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	if s.loaded {
		credential := s.cached
		s.mu.RUnlock()
		return credential, credential != "", nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached, s.cached != "", nil
	}

	credential, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}

	s.cached = credential
	s.loaded = true
	return credential, credential != "", nil
}

func (s *sqliteSessionStore) load(ctx context.Context) (string, error) {
	log := s.logger

	query, args, err := buildSelectValueQuery(accessTokenKey)
	if err != nil {
		return "", err
	}

	var credential string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&credential)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		log.Err(err).
			Str("func", "sqliteSessionStore.load").
			Msg("failed to read stored credential")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return credential, nil
}

func (s *sqliteSessionStore) Set(ctx context.Context, credential string) error {
	if credential == "" {
		return ErrEmptyCredential
	}

	log := s.logger

	query, args, err := buildUpsertValueQuery(accessTokenKey, credential, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteSessionStore.Set").
			Msg("failed to persist credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	s.cached = credential
	s.loaded = true
	return nil
}

func (s *sqliteSessionStore) Clear(ctx context.Context) error {
	log := s.logger

	query, args, err := buildDeleteValueQuery(accessTokenKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteSessionStore.Clear").
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	s.cached = ""
	s.loaded = true
	return nil
}
