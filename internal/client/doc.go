// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application runtime.
//
// It wires the session store, REST gateway, push channel and client
// services into a single process lifecycle and exposes them as cobra
// commands that print the inbox with lipgloss styling.
package client
