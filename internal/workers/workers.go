// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
)

type Workers struct {
	mu      sync.Mutex
	workers []Worker
	wg      sync.WaitGroup
}

// New returns an aggregate of ws. nil entries are skipped.
func New(ws ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range ws {
		w.Add(worker)
	}
	return w
}

func (w *Workers) Add(worker Worker) {
	if worker == nil {
		return
	}
	w.mu.Lock()
	w.workers = append(w.workers, worker)
	w.mu.Unlock()
}

// Run starts every worker on its own goroutine, in registration order.
func (w *Workers) Run() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run()
		}()
	}
}

// Shutdown stops the workers in reverse order and waits for their Run to
// return. Errors are joined.
func (w *Workers) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	workers := append([]Worker(nil), w.workers...)
	w.mu.Unlock()

	var errs []error
	for i := len(workers) - 1; i >= 0; i-- {
		if err := workers[i].Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}
