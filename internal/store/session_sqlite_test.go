// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
)

var (
	selectValueSQL = regexp.QuoteMeta("SELECT value FROM client_state WHERE name = ? LIMIT 1")
	upsertValueSQL = regexp.QuoteMeta("INSERT INTO client_state (name,value,updated_at) VALUES (?,?,?)")
	deleteValueSQL = regexp.QuoteMeta("DELETE FROM client_state WHERE name = ?")
)

func newTestSessionStore(t *testing.T) (*sqliteSessionStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	s := NewSQLiteSessionStore(&DB{DB: db, logger: l}, l).(*sqliteSessionStore)
	return s, mock
}

func TestSQLiteSessionStore_GetStored(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectQuery(selectValueSQL).
		WithArgs("access_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("T1"))

	credential, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", credential)

	// cached: no second query
	credential, ok, err = s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", credential)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSessionStore_GetAbsent(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectQuery(selectValueSQL).
		WithArgs("access_token").
		WillReturnError(sql.ErrNoRows)

	credential, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, credential)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSessionStore_GetQueryError(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectQuery(selectValueSQL).WillReturnError(errors.New("disk I/O error"))

	_, ok, err := s.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.False(t, ok)

	// a failed load is retried on the next Get
	mock.ExpectQuery(selectValueSQL).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("T2"))

	credential, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T2", credential)
}

func TestSQLiteSessionStore_SetThenGetUsesCache(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectExec(upsertValueSQL).
		WithArgs("access_token", "T1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Set(context.Background(), "T1"))

	credential, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", credential)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSessionStore_SetEmptyRejected(t *testing.T) {
	s, mock := newTestSessionStore(t)

	err := s.Set(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyCredential)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSessionStore_SetExecError(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectExec(upsertValueSQL).WillReturnError(errors.New("readonly database"))

	err := s.Set(context.Background(), "T1")
	assert.ErrorIs(t, err, ErrExecutingStatement)

	mock.ExpectQuery(selectValueSQL).WillReturnError(sql.ErrNoRows)
	_, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "failed write must not be visible")
}

func TestSQLiteSessionStore_ClearThenGetAbsent(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectExec(upsertValueSQL).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(deleteValueSQL).
		WithArgs("access_token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "T1"))
	require.NoError(t, s.Clear(context.Background()))

	credential, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, credential)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteSessionStore_ClearExecError(t *testing.T) {
	s, mock := newTestSessionStore(t)

	mock.ExpectExec(deleteValueSQL).WillReturnError(errors.New("locked"))

	assert.ErrorIs(t, s.Clear(context.Background()), ErrExecutingStatement)
}

// TestClientStorages_SurvivesRestart opens a real SQLite file twice to
// check that the credential is durable.
func TestClientStorages_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "nested", "session.db")}}

	first, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Session.Set(ctx, "T1"))
	require.NoError(t, first.Close())

	second, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer second.Close()

	credential, ok, err := second.Session.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", credential)

	require.NoError(t, second.Session.Clear(ctx))
	_, ok, err = second.Session.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientStorages_MemoryDSN(t *testing.T) {
	ctx := context.Background()

	s, err := NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: MemoryDSN}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Session.Set(ctx, "T1"))
	credential, ok, err := s.Session.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", credential)
}
