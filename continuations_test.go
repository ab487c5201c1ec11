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
	"testing"
	"time"
)

func TestAttachRunsAfterCompletion(t *testing.T) {
	f := New[int](newFakeInvocation("inv-cb-1"), &Config[int]{Logger: quietLogger()})

	done := make(chan int, 1)
	f.Attach(CallbackFunc[int]{
		Success: func(v int) { done <- v },
	}, InlineExecutor{})

	f.Complete(5)

	select {
	case v := <-done:
		if v != 5 {
			t.Fatalf("expected 5, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("callback never ran")
	}
}

func TestAttachOnAlreadyDoneFutureStillRuns(t *testing.T) {
	f := New[int](newFakeInvocation("inv-cb-2"), &Config[int]{Logger: quietLogger()})
	f.Complete(3)

	done := make(chan int, 1)
	f.AttachDefault(CallbackFunc[int]{
		Success: func(v int) { done <- v },
	})

	select {
	case v := <-done:
		if v != 3 {
			t.Fatalf("expected 3, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("callback on an already-resolved future never ran")
	}
}

func TestAttachedCallbacksRunInLIFOOrder(t *testing.T) {
	f := New[int](newFakeInvocation("inv-cb-3"), &Config[int]{Logger: quietLogger()})

	var mu sync.Mutex
	var order []int
	record := func(n int) {
		mu.Lock()
		order = append(order, n)
		mu.Unlock()
	}

	for i := 1; i <= 3; i++ {
		n := i
		f.Attach(CallbackFunc[int]{Success: func(int) { record(n) }}, InlineExecutor{})
	}
	f.Complete(0)

	mu.Lock()
	defer mu.Unlock()
	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("expected %d callbacks to run, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected LIFO order %v, got %v", want, order)
		}
	}
}

func TestFailureRunsOnFailure(t *testing.T) {
	f := New[int](newFakeInvocation("inv-cb-4"), &Config[int]{Logger: quietLogger()})

	gotErr := make(chan error, 1)
	f.Attach(CallbackFunc[int]{
		Failure: func(err error) { gotErr <- err },
	}, InlineExecutor{})

	f.CompleteErr(errors.New("boom"))

	select {
	case err := <-gotErr:
		if err == nil {
			t.Fatalf("expected a non-nil error")
		}
	case <-time.After(time.Second):
		t.Fatalf("OnFailure never ran")
	}
}

func TestPanickingCallbackDoesNotAffectOthers(t *testing.T) {
	f := New[int](newFakeInvocation("inv-cb-5"), &Config[int]{Logger: quietLogger()})

	done := make(chan struct{}, 1)
	f.Attach(CallbackFunc[int]{Success: func(int) { panic("boom") }}, InlineExecutor{})
	f.Attach(CallbackFunc[int]{Success: func(int) { close(done) }}, InlineExecutor{})

	f.Complete(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("the second continuation should still run despite the first panicking")
	}
}
