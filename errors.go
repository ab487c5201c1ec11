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
	"fmt"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrFutureCancelUnsupported is never returned by Cancel itself (Cancel
	// just reports false), but is available for callers that want a stable
	// sentinel to compare against when they choose to surface cancellation
	// attempts as errors of their own.
	ErrFutureCancelUnsupported = errors.New("invoke: future cancellation is not supported")

	// ErrRawResponseNotDecoded is the contract violation raised when
	// resolution finds a still-serialized value on a Future that was not
	// constructed in deserialize mode.
	ErrRawResponseNotDecoded = errors.New("invoke: complete() was offered an undecoded wire response")
)

// TimeoutError is the terminal outcome produced when the Await Engine's
// budget elapses, or when long-poll escalation concludes the remote peer
// is no longer executing the invocation.
type TimeoutError struct {
	InvocationID string
	ElapsedMS    int64
	synthesized  bool
}

func (e *TimeoutError) Error() string {
	if e.synthesized {
		return fmt.Sprintf("invoke: call %s timed out after %dms of long-poll escalation (remote not executing)", e.InvocationID, e.ElapsedMS)
	}
	return fmt.Sprintf("invoke: call %s timed out after %dms", e.InvocationID, e.ElapsedMS)
}

func newDeadlineExceededError(invocationID string, elapsedMS int64) *TimeoutError {
	return &TimeoutError{InvocationID: invocationID, ElapsedMS: elapsedMS}
}

func newSynthesizedTimeoutError(invocationID string, elapsedMS int64) *TimeoutError {
	return &TimeoutError{InvocationID: invocationID, ElapsedMS: elapsedMS, synthesized: true}
}

// NewSynthesizedTimeoutError builds the error an InvocationHandle
// implementation's NewTimeoutError should return when the Await Engine's
// long-poll escalation has concluded the remote is no longer executing the
// invocation. Exported so collaborators outside this package, such as
// invocation.Invocation, can produce the same *TimeoutError the Await
// Engine's own non-escalated timeout path produces.
func NewSynthesizedTimeoutError(invocationID string, elapsedMS int64) error {
	return newSynthesizedTimeoutError(invocationID, elapsedMS)
}

// InterruptedError is the terminal outcome installed externally when an
// awaiter's context is cancelled and the surrounding machinery decides the
// invocation should not continue. The Await Engine itself never
// synthesizes this value; it only defers on a live cancellation and keeps
// waiting.
type InterruptedError struct {
	InvocationID string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("invoke: call %s was interrupted", e.InvocationID)
}

// ExecutionError wraps a failure delivered as a completion value. Its
// stack field carries the awaiter's frames, spliced beneath the original
// failure site so the combined trace restores the causal context lost
// when the failure crossed goroutines.
type ExecutionError struct {
	InvocationID string
	Cause        error
	AwaiterStack string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("invoke: call %s failed: %s", e.InvocationID, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// stitchStack captures the calling goroutine's stack and returns it as
// text, to be attached to a failure that is about to cross back into this
// goroutine from whichever delivery thread produced it.
func stitchStack(skip int) string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	lines := strings.SplitN(string(buf[:n]), "\n", skip+1)
	if len(lines) <= skip {
		return string(buf[:n])
	}
	return lines[len(lines)-1]
}

func newExecutionError(invocationID string, cause error) *ExecutionError {
	return &ExecutionError{
		InvocationID: invocationID,
		Cause:        cause,
		AwaiterStack: stitchStack(2),
	}
}

// ContinuationPanic wraps a panic raised by a user continuation. It is
// logged at error level and never affects the Future's outcome or any
// other continuation.
type ContinuationPanic struct {
	v any
}

func (e *ContinuationPanic) Error() string {
	return fmt.Sprintf("invoke: continuation panicked: %v", e.v)
}

// preconditionViolation panics with every failed precondition named, using
// go-multierror so a caller debugging a contract violation sees the full
// list in one panic message instead of only the first check that failed.
func preconditionViolation(checks map[string]bool) {
	var merr *multierror.Error
	for what, failed := range checks {
		if failed {
			merr = multierror.Append(merr, fmt.Errorf("%s", what))
		}
	}
	if merr != nil {
		panic(fmt.Sprintf("invoke: contract violation: %s", merr.Error()))
	}
}
