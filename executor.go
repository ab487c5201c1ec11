// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package invoke

import (
	"errors"
	"sync"
)

// ErrExecutorClosed is returned by Submit once Close has been called.
var ErrExecutorClosed = errors.New("invoke: executor is closed")

// Executor runs a submitted continuation. Submit may reject work (e.g.
// when a bounded pool is saturated); rejection is logged by the caller,
// never propagated to a Future's outcome.
type Executor interface {
	Submit(fn func()) error
}

// WorkerPool is a bounded Executor: at most size continuations run
// concurrently, the rest queue for a free slot. It is built around a
// buffered channel used purely as a concurrency limiter alongside a
// sync.WaitGroup-tracked goroutine per submitted job — one goroutine per
// continuation, gated by the channel's capacity.
type WorkerPool struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewWorkerPool returns a WorkerPool that runs at most size continuations
// concurrently. A size of 0 or less means unlimited concurrency.
func NewWorkerPool(size int) *WorkerPool {
	p := &WorkerPool{}
	if size > 0 {
		p.sem = make(chan struct{}, size)
	}
	return p
}

func (p *WorkerPool) Submit(fn func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrExecutorClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	if p.sem != nil {
		p.sem <- struct{}{}
	}
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			defer func() { <-p.sem }()
		}
		fn()
	}()
	return nil
}

// Wait blocks until every submitted continuation has returned.
func (p *WorkerPool) Wait() { p.wg.Wait() }

// Close marks the pool as no longer accepting new work. Continuations
// already running are unaffected.
func (p *WorkerPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// InlineExecutor runs every continuation synchronously on the submitting
// goroutine. It exists for tests and for hosts that have already arranged
// their own dispatch (e.g. a single-threaded event loop) — production
// usage should prefer WorkerPool, since continuations are promised to
// never run inline on the completer; using InlineExecutor from inside a
// continuation breaks that promise and is the caller's responsibility to
// avoid.
type InlineExecutor struct{}

func (InlineExecutor) Submit(fn func()) error {
	fn()
	return nil
}

// DefaultExecutor is used by Attach's single-argument form when a Future
// was constructed without an explicit default executor.
var DefaultExecutor Executor = NewWorkerPool(0)
