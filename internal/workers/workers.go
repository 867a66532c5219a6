// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package workers

// Workers aggregates background workers so the application can start and
// stop all of them with one call.
type Workers struct {
	workers []Worker
}

// New builds a Workers aggregate from the given workers. Nil entries are
// skipped so callers can pass optional workers unconditionally.
func New(workers ...Worker) *Workers {
	ws := &Workers{workers: make([]Worker, 0, len(workers))}
	for _, w := range workers {
		if w != nil {
			ws.workers = append(ws.workers, w)
		}
	}
	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
