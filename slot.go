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

import "sync/atomic"

// sentinelKind identifies one of the four internal sentinels, or "not a
// sentinel", that a slotCell may carry. Sentinels are distinguished by
// this discriminant, never by comparing values, so a real payload that
// happens to equal a sentinel's zero value is never confusable with one:
// application code has no way to produce a slotCell with a sentinelKind
// other than notSentinel.
type sentinelKind uint8

const (
	notSentinel sentinelKind = iota
	sentinelWaitAgain
	sentinelNullReply
	sentinelInterrupted
	sentinelDeadlineExceeded
)

func (k sentinelKind) String() string {
	switch k {
	case sentinelWaitAgain:
		return "WAIT_AGAIN"
	case sentinelNullReply:
		return "NULL_REPLY"
	case sentinelInterrupted:
		return "INTERRUPTED"
	case sentinelDeadlineExceeded:
		return "DEADLINE_EXCEEDED"
	default:
		return "<value>"
	}
}

// slotCell is the immutable value stored behind a Response Slot's atomic
// pointer: a tagged union of {sentinel, value, error}. For a notSentinel
// cell, isFailure selects whether val or err is meaningful; the
// INTERRUPTED and DEADLINE_EXCEEDED sentinels also carry err. It is
// parameterized by the Future's result type so a decoded value can be
// published alongside the four sentinels in the same atomic word.
type slotCell[T any] struct {
	kind      sentinelKind
	isFailure bool
	val       T
	err       error
	// rawPending holds a still-serialized reply, when the Future was
	// constructed in deserialize mode and the delivery thread offered
	// bytes rather than a decoded value.
	rawPending []byte
}

func waitAgainCell[T any]() *slotCell[T] {
	return &slotCell[T]{kind: sentinelWaitAgain}
}

func nullReplyCell[T any]() *slotCell[T] {
	return &slotCell[T]{kind: sentinelNullReply}
}

func interruptedCell[T any](err error) *slotCell[T] {
	return &slotCell[T]{kind: sentinelInterrupted, err: err}
}

func deadlineExceededCell[T any](err error) *slotCell[T] {
	return &slotCell[T]{kind: sentinelDeadlineExceeded, err: err}
}

func valueCell[T any](v T) *slotCell[T] {
	return &slotCell[T]{val: v}
}

func failureCell[T any](err error) *slotCell[T] {
	return &slotCell[T]{isFailure: true, err: err}
}

func rawCell[T any](raw []byte) *slotCell[T] {
	return &slotCell[T]{rawPending: raw}
}

// responseSlot is a single atomic cell holding either nothing (empty), one
// of the four internal sentinels, or a terminal payload. Reads are
// lock-free and legal from any goroutine. The Completion Gate writes it
// with a plain store inside its monitor section; the one other write is
// the Await Engine's cas from WAIT_AGAIN back to empty, made outside the
// monitor.
type responseSlot[T any] struct {
	cell atomic.Pointer[slotCell[T]]
}

// read returns the current cell, or nil if the slot is empty.
func (s *responseSlot[T]) read() *slotCell[T] {
	return s.cell.Load()
}

// cas performs a conditional write.
func (s *responseSlot[T]) cas(expected, new *slotCell[T]) bool {
	return s.cell.CompareAndSwap(expected, new)
}

// isTerminal reports whether cell is neither empty nor WAIT_AGAIN.
func isTerminal[T any](cell *slotCell[T]) bool {
	return cell != nil && cell.kind != sentinelWaitAgain
}
