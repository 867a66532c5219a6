// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution; implementations are expected to spawn
// goroutines internally and return immediately. Stop requests shutdown and
// blocks until in-flight work is drained.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run()  { /* start background processing */ }
//	func (w *MyWorker) Stop() { /* drain and stop */ }
type Worker interface {
	Run()
	Stop()
}
