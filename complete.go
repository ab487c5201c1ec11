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

// Complete offers val as this Future's terminal success value. It can be
// called multiple times, and from multiple goroutines, but only the first
// call whose offered value actually takes effect returns true; every
// later call is a no-op that returns false.
func (f *Future[T]) Complete(val T) bool {
	return f.completeCell(valueCell(val))
}

// CompleteEmpty offers a successful reply with no payload — the Go
// equivalent of offering a null response. It offers the NULL_REPLY
// sentinel, which resolves to the zero value of T with no error.
func (f *Future[T]) CompleteEmpty() bool {
	return f.completeCell(nullReplyCell[T]())
}

// CompleteErr offers err as this Future's terminal failure value. err
// must not be nil; offering a nil error is a contract violation.
func (f *Future[T]) CompleteErr(err error) bool {
	preconditionViolation(map[string]bool{"completeErr requires a non-nil error": err == nil})
	return f.completeCell(failureCell[T](err))
}

// CompleteRaw offers a still-serialized reply. It is only meaningful on a
// Future constructed in deserialize mode; resolution decodes it through
// the Future's Codec when an awaiter or continuation observes it.
func (f *Future[T]) CompleteRaw(raw []byte) bool {
	return f.completeCell(rawCell[T](raw))
}

// WaitAgain offers the WAIT_AGAIN sentinel: the future remains open,
// continuations are left untouched, and no deregistration happens. It is
// used by server-side blocking operations that need to tell an awaiter
// "re-arm your wait" without giving up the slot.
func (f *Future[T]) WaitAgain() bool {
	return f.completeCell(waitAgainCell[T]())
}

// Interrupt installs the terminal INTERRUPTED outcome. The Await Engine
// never calls this itself — an awaiter's own cancellation while parked is
// deferred, not terminal — so this method exists only for external
// machinery that needs to force an invocation to stop outright.
func (f *Future[T]) Interrupt(err error) bool {
	return f.completeCell(interruptedCell[T](err))
}

// synthesizeTimeout is used internally by the Await Engine's long-poll
// escalation. The Await Engine's plain budget timeout does not call it and
// leaves the slot untouched.
func (f *Future[T]) synthesizeTimeout(err error) bool {
	return f.completeCell(deadlineExceededCell[T](err))
}

// completeCell performs the full completion algorithm under the monitor,
// then submits detached continuations outside it.
func (f *Future[T]) completeCell(offered *slotCell[T]) bool {
	f.monitor.enter()

	if cur := f.slot.read(); isTerminal(cur) {
		// Redundant completion, most commonly late network traffic
		// arriving after the invocation already resolved: log quietly
		// and deregister defensively.
		f.monitor.exit()
		f.logger.Trace("redundant completion ignored",
			"invocation", f.invocation.ID(), "offered", offered.kind.String())
		f.registry.Deregister(f.invocation.ID())
		return false
	}

	f.slot.cell.Store(offered)

	if offered.kind == sentinelWaitAgain {
		// Remains open, no notify, no continuation touch, no
		// deregistration.
		f.monitor.exit()
		return true
	}

	head := f.continuations.detachAndDrain()
	f.monitor.notifyAll()
	f.registry.Deregister(f.invocation.ID())
	f.monitor.exit()

	if head != nil {
		submitAll(head, f.resolve(offered), f.logger)
	}
	return true
}
