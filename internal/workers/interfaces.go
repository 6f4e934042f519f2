// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers of the client process.
// It defines the Worker interface and a Workers aggregate that starts
// several workers together and stops them together.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks for the duration of the work. Shutdown asks a running worker to
// stop and returns once it has, or when ctx expires.
//
// Example implementation:
//
//	type MyWorker struct{ srv *http.Server }
//
//	func (w *MyWorker) Run()                               { _ = w.srv.ListenAndServe() }
//	func (w *MyWorker) Shutdown(ctx context.Context) error { return w.srv.Shutdown(ctx) }
type Worker interface {
	Run()
	Shutdown(ctx context.Context) error
}
