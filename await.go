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
	"context"
	"time"
)

// unboundedMS is the distinguished "no budget" value; saturatingSub treats
// it as absorbing.
const unboundedMS int64 = 1<<63 - 1

// maxCallTimeoutExtensionMS is the 60s cap on how much extra runway a call
// timeout contributes to a single poll window.
const maxCallTimeoutExtensionMS int64 = 60 * 1000

// effectivelyForever stands in for an unbounded park duration. A literal
// math.MaxInt64 nanoseconds overflows time.Duration arithmetic, so an
// unbounded wait uses this instead; in practice a park this long always
// ends early, woken by a completion or a context cancellation.
const effectivelyForever = 100 * 365 * 24 * time.Hour

// saturatingSub subtracts elapsed from remaining. unboundedMS absorbs any
// subtraction. A finite remaining is allowed to go negative: the main loop
// relies on that to notice its budget is spent and stop, rather than
// pinning at a fixed point it can never fall below.
func saturatingSub(remaining, elapsed int64) int64 {
	if remaining == unboundedMS {
		return unboundedMS
	}
	return remaining - elapsed
}

func minMS(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// maxSinglePoll derives the max-single-poll bound from the invocation's
// call timeout C: M = min(C + min(C, 60000ms), ∞). A non-positive C means
// the invocation carries no call timeout of its own, so M is unbounded and
// long-poll escalation never triggers.
func maxSinglePoll(callTimeoutMS int64) int64 {
	if callTimeoutMS <= 0 {
		return unboundedMS
	}
	return callTimeoutMS + minMS(callTimeoutMS, maxCallTimeoutExtensionMS)
}

// AwaitUntimed blocks until this Future resolves, with no budget. ctx is
// consulted only for cancellation: cancelling it is an interrupt, not a
// timeout, so a cancelled ctx makes AwaitUntimed stop deferring to the
// remote's liveness and fall through to whatever the slot eventually holds
// rather than ever synthesizing a TimeoutError on its own.
func (f *Future[T]) AwaitUntimed(ctx context.Context) (T, error) {
	res := f.awaitLoop(ctx, unboundedMS)
	return res.Val(), res.Err()
}

// AwaitTimeout blocks until this Future resolves or timeout elapses,
// whichever comes first. A negative timeout is clamped to zero, which
// makes this a single non-blocking probe of the current state.
func (f *Future[T]) AwaitTimeout(ctx context.Context, timeout time.Duration) (T, error) {
	ms := timeout.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	res := f.awaitLoop(ctx, ms)
	return res.Val(), res.Err()
}

// Join is the unchecked convenience wrapper: it awaits with no budget and
// panics with the resolved error instead of returning it.
func (f *Future[T]) Join(ctx context.Context) T {
	res := f.awaitLoop(ctx, unboundedMS)
	if err := res.Err(); err != nil {
		panic(err)
	}
	return res.Val()
}

// awaitLoop is the main loop of the Await Engine. budgetMS is the caller's
// total wait budget, already clamped non-negative, or unboundedMS.
func (f *Future[T]) awaitLoop(ctx context.Context, budgetMS int64) Result[T] {
	if cell := f.slot.read(); isTerminal(cell) {
		return f.resolve(cell)
	}

	f.monitor.regWait()
	defer f.monitor.unregWait()

	maxPoll := maxSinglePoll(f.invocation.CallTimeoutMS())
	longPolling := budgetMS > maxPoll

	remaining := budgetMS
	pollCount := 0
	interrupted := false

	for remaining >= 0 {
		p := minMS(maxPoll, remaining)
		// A non-positive p means the budget is already spent before this
		// poll even starts: park_for returns instantly without blocking,
		// so elapsed can legitimately read as 0 on a coarse clock. Forcing
		// remaining negative here (instead of trusting the elapsed-based
		// subtraction) guarantees this is the last such iteration, the way
		// a real sleep naturally guarantees progress on every other one.
		lastPoll := p <= 0

		start := f.clock.NowMS()
		pollCount++
		if f.parkFor(ctx, p) {
			interrupted = true
			f.monitor.markInterrupted()
		}
		if lastPoll {
			remaining = -1
		} else {
			remaining = saturatingSub(remaining, f.clock.NowMS()-start)
		}

		cell := f.slot.read()
		if cell != nil && cell.kind == sentinelWaitAgain {
			// The slot re-arms to empty without a terminal value; nothing
			// to report yet, so loop back in with whatever budget is left.
			f.slot.cas(cell, nil)
			continue
		}
		if cell != nil {
			return f.resolve(cell)
		}

		if interrupted || !longPolling {
			continue
		}

		// Long-poll escalation: the budget outruns a single poll window,
		// so after every window that comes up empty, check whether the
		// remote is still actually executing this invocation before
		// committing to another window.
		target := f.invocation.TargetAddress()
		if f.invocation.IsRemote() && target.Equal(f.invocation.LocalAddress()) {
			// The invocation is mid-migration onto this very node; give it
			// another window rather than escalating against ourselves.
			continue
		}

		f.logger.Warn("no reply after a long-poll window, probing liveness",
			"invocation", f.invocation.ID(), "polls", pollCount)

		if f.liveness.IsExecuting(ctx, f.invocation) {
			continue
		}

		timeoutErr := f.invocation.NewTimeoutError(int64(pollCount) * p)
		if f.slot.read() != nil {
			// A real reply landed while the oracle was being consulted;
			// don't clobber it with a synthesized timeout.
			continue
		}
		f.synthesizeTimeout(timeoutErr)
	}

	return f.resolve(deadlineExceededCell[T](newDeadlineExceededError(f.invocation.ID(), budgetMS)))
}

// parkFor waits up to ms milliseconds for either a completion or ctx's
// cancellation, whichever comes first, and reports whether ctx ended the
// park. A slot that is already non-empty, or a non-positive ms, returns
// immediately without actually parking.
func (f *Future[T]) parkFor(ctx context.Context, ms int64) bool {
	if f.slot.read() != nil || ms <= 0 {
		return ctx.Err() != nil
	}

	d := effectivelyForever
	if ms != unboundedMS {
		d = time.Duration(ms) * time.Millisecond
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	done := make(chan struct{})
	go func() {
		select {
		case <-timer.C:
		case <-ctx.Done():
		case <-done:
			return
		}
		f.monitor.enter()
		f.monitor.notifyAll()
		f.monitor.exit()
	}()

	f.monitor.enter()
	if f.slot.read() == nil {
		f.monitor.wait()
	}
	f.monitor.exit()
	close(done)

	return ctx.Err() != nil
}
