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

import "fmt"

// Result is the resolved outcome of a Future: either a value, the absent
// value (a successful reply with no payload), or an error.
//
// A Future resolves to exactly one Result; it is never re-resolved, and it
// never carries a pending or panicked state of its own — only success or
// failure, once, by the time a Result exists at all.
type Result[T any] interface {
	Val() T
	Err() error
}

// Val wraps a successful value as a Result.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err wraps a failure as a Result. err must not be nil.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

// Empty is the Result of a successful reply with no payload — the
// resolution of the NULL_REPLY sentinel.
func Empty[T any]() Result[T] {
	return valResult[T]{}
}

type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }

func (r valResult[T]) Val() (v T) { return r.val }
func (r errResult[T]) Val() (v T) { return v }

func (r valResult[T]) Err() error { return nil }
func (r errResult[T]) Err() error { return r.err }

func (r valResult[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}
func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}
