// Copyright 2023 Ahmad Sameh(asmsh)
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

// Callback is a user-supplied continuation attached to a Future. Exactly
// one of OnSuccess or OnFailure is invoked, once, after the Future
// resolves, on the Executor given to Attach.
type Callback[T any] interface {
	OnSuccess(val T)
	OnFailure(err error)
}

// CallbackFunc adapts two plain functions into a Callback.
type CallbackFunc[T any] struct {
	Success func(T)
	Failure func(error)
}

func (f CallbackFunc[T]) OnSuccess(val T) {
	if f.Success != nil {
		f.Success(val)
	}
}

func (f CallbackFunc[T]) OnFailure(err error) {
	if f.Failure != nil {
		f.Failure(err)
	}
}

// continuationNode is one immutable link of a lock-protected singly-linked
// LIFO stack of {callback, executor} pairs.
type continuationNode[T any] struct {
	callback Callback[T]
	executor Executor
	next     *continuationNode[T]
}

// continuationList is guarded entirely by the Waiter Monitor's mutex; it
// is never read or written without holding it.
type continuationList[T any] struct {
	head *continuationNode[T]
}

// push links a new node onto the list. Caller must hold the monitor.
func (l *continuationList[T]) push(cb Callback[T], ex Executor) {
	l.head = &continuationNode[T]{callback: cb, executor: ex, next: l.head}
}

// detachAndDrain exchanges the head with nil and returns the old head, for
// asynchronous invocation outside the monitor.
func (l *continuationList[T]) detachAndDrain() *continuationNode[T] {
	head := l.head
	l.head = nil
	return head
}

// submitAll walks the chain in LIFO order (attach order reversed) and
// submits each node's callback to its executor.
func submitAll[T any](head *continuationNode[T], res Result[T], logger Logger) {
	for n := head; n != nil; n = n.next {
		submitOne(n.callback, n.executor, res, logger)
	}
}

// submitOne submits a single continuation to run on ex rather than calling
// it directly; whether it runs on the caller's goroutine depends on ex.
func submitOne[T any](cb Callback[T], ex Executor, res Result[T], logger Logger) {
	err := ex.Submit(func() {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("continuation panicked", "panic", v)
			}
		}()
		if err := res.Err(); err != nil {
			cb.OnFailure(err)
		} else {
			cb.OnSuccess(res.Val())
		}
	})
	if err != nil {
		logger.Warn("executor rejected continuation submission", "error", err)
	}
}
