// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fakeapi is an in-memory stand-in for the aggregation server used by
// end-to-end tests of the client. It serves the REST API under /api and the
// realtime channel on /ws/{userID}, keeps users, accounts, chats and messages
// in memory and lets a test inject failures, revoke tokens, drop realtime
// connections and simulate incoming messages.
//
// Request handling mirrors a production handler stack: a request id
// middleware, a structured access log, bearer-token authentication and
// FastAPI style {"detail": "..."} error bodies.
package fakeapi
