// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	clientStateTable = "client_state"

	// accessTokenKey is the single durable key holding the credential.
	accessTokenKey = "access_token"
)

// psql is the statement builder for SQLite ("?" placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildSelectValueQuery returns the query reading the value stored under key.
func buildSelectValueQuery(key string) (string, []any, error) {
	query, args, err := psql.
		Select("value").
		From(clientStateTable).
		Where(sq.Eq{"name": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertValueQuery returns the statement storing value under key,
// replacing any previous value.
func buildUpsertValueQuery(key, value string, now time.Time) (string, []any, error) {
	query, args, err := psql.
		Insert(clientStateTable).
		Columns("name", "value", "updated_at").
		Values(key, value, now.UTC()).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteValueQuery returns the statement removing key.
func buildDeleteValueQuery(key string) (string, []any, error) {
	query, args, err := psql.
		Delete(clientStateTable).
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
