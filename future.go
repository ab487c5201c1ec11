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

import "context"

// Future is the rendezvous between the goroutine(s) awaiting a reply, the
// delivery callback that supplies it, and any continuations attached to
// it.
//
// The zero value is not usable; construct one with New.
type Future[T any] struct {
	invocation  InvocationHandle
	registry    Deregisterer
	liveness    LivenessOracle
	codec       Codec[T]
	clock       Clock
	logger      Logger
	deserialize bool

	slot          responseSlot[T]
	continuations continuationList[T]
	monitor       *waiterMonitor

	defaultExecutor Executor
}

// Config supplies a Future's optional collaborators. Only Invocation is
// required; the rest default to conservative, always-correct behavior
// (an oracle that always reports "not executing", so long-poll escalation
// synthesizes a timeout after the first empty window; a process-wide
// worker pool; a no-op registry).
// A single optional trailing config struct is used here instead of a long
// parameter list or functional options.
type Config[T any] struct {
	Registry        Deregisterer
	Liveness        LivenessOracle
	Codec           Codec[T]
	Clock           Clock
	Logger          Logger
	DefaultExecutor Executor

	// Deserialize, if true, means a completion value offered as raw bytes
	// must be run through Codec before being handed to an awaiter or
	// continuation.
	Deserialize bool
}

// New creates an empty Future bound to invocation. The slot starts empty;
// it is mutated exactly once terminally, by either a Complete* method
// called from a delivery goroutine or the Await Engine synthesizing a
// timeout.
func New[T any](invocation InvocationHandle, cfg ...*Config[T]) *Future[T] {
	f := &Future[T]{
		invocation:      invocation,
		registry:        noopRegistry{},
		liveness:        neverExecutingOracle{},
		clock:           defaultClock,
		logger:          defaultLogger(),
		monitor:         newWaiterMonitor(),
		defaultExecutor: DefaultExecutor,
	}
	if len(cfg) != 0 && cfg[0] != nil {
		c := cfg[0]
		if c.Registry != nil {
			f.registry = c.Registry
		}
		if c.Liveness != nil {
			f.liveness = c.Liveness
		}
		if c.Codec != nil {
			f.codec = c.Codec
		}
		if c.Clock != nil {
			f.clock = c.Clock
		}
		if c.Logger != nil {
			f.logger = c.Logger
		}
		if c.DefaultExecutor != nil {
			f.defaultExecutor = c.DefaultExecutor
		}
		f.deserialize = c.Deserialize
	}
	return f
}

// IsDone reports whether the slot holds a terminal value.
func (f *Future[T]) IsDone() bool {
	return isTerminal(f.slot.read())
}

// Cancel is always a no-op: invocation futures cannot be cancelled.
func (f *Future[T]) Cancel(bool) bool { return false }

// IsCancelled always returns false.
func (f *Future[T]) IsCancelled() bool { return false }

// WaiterCount returns the number of goroutines currently parked in Await
// on this Future.
func (f *Future[T]) WaiterCount() int { return f.monitor.WaiterCount() }

// Attach registers a continuation to run on executor once this Future
// resolves. If the Future has already resolved, the continuation is
// submitted to executor immediately rather than called directly; whether
// it then runs on the calling goroutine depends on executor
// (InlineExecutor runs it synchronously, WorkerPool does not).
func (f *Future[T]) Attach(cb Callback[T], executor Executor) {
	preconditionViolation(map[string]bool{
		"callback must not be nil": cb == nil,
		"executor must not be nil": executor == nil,
	})

	f.monitor.enter()
	if cell := f.slot.read(); isTerminal(cell) {
		f.monitor.exit()
		submitOne(cb, executor, f.resolve(cell), f.logger)
		return
	}
	f.continuations.push(cb, executor)
	f.monitor.exit()
}

// AttachDefault is Attach using the Future's default executor.
func (f *Future[T]) AttachDefault(cb Callback[T]) {
	f.Attach(cb, f.defaultExecutor)
}

func (f *Future[T]) String() string {
	cell := f.slot.read()
	return "Future{invocation=" + f.invocation.ID() + ", done=" + boolStr(isTerminal(cell)) + "}"
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// noopRegistry is used when a Future is constructed without a Registry:
// deregistration becomes a harmless no-op rather than a nil dereference.
type noopRegistry struct{}

func (noopRegistry) Deregister(string) {}

// neverExecutingOracle is used when a Future is constructed without a
// LivenessOracle: long-poll escalation then synthesizes a timeout on the
// very first poll that exhausts max-single-poll, which is the safest
// default absent real liveness information.
type neverExecutingOracle struct{}

func (neverExecutingOracle) IsExecuting(_ context.Context, _ InvocationHandle) bool { return false }
