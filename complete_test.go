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
	"errors"
	"testing"
	"time"
)

func TestWaitAgainLeavesSlotOpen(t *testing.T) {
	f := New[int](newFakeInvocation("inv-wa-1"), &Config[int]{Logger: quietLogger()})

	if ok := f.WaitAgain(); !ok {
		t.Fatalf("WaitAgain should take effect on an empty slot")
	}
	if f.IsDone() {
		t.Fatalf("a future that only received WAIT_AGAIN must not be done")
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		f.Complete(7)
	}()

	val, err := f.AwaitUntimed(context.Background())
	if err != nil || val != 7 {
		t.Fatalf("expected the later real completion (7), got %d, err=%v", val, err)
	}
}

func TestWaitAgainCanRepeatBeforeTerminalCompletion(t *testing.T) {
	f := New[int](newFakeInvocation("inv-wa-2"), &Config[int]{Logger: quietLogger()})

	for i := 0; i < 3; i++ {
		if ok := f.WaitAgain(); !ok {
			t.Fatalf("WaitAgain call %d should take effect", i)
		}
	}
	if f.Complete(9); !f.IsDone() {
		t.Fatalf("expected the future to be done after the terminal Complete")
	}
}

func TestRedundantCompletionIsIgnored(t *testing.T) {
	f := New[int](newFakeInvocation("inv-wa-3"), &Config[int]{Logger: quietLogger()})

	f.Complete(1)
	if ok := f.CompleteErr(errors.New("too late")); ok {
		t.Fatalf("a completion after a terminal outcome must be a no-op")
	}

	val, err := f.AwaitUntimed(context.Background())
	if err != nil || val != 1 {
		t.Fatalf("expected the original value to survive, got %d, err=%v", val, err)
	}
}

func TestInterruptInstallsTerminalError(t *testing.T) {
	f := New[int](newFakeInvocation("inv-wa-4"), &Config[int]{Logger: quietLogger()})

	f.Interrupt(&InterruptedError{InvocationID: "inv-wa-4"})
	if !f.IsDone() {
		t.Fatalf("Interrupt must install a terminal outcome")
	}

	_, err := f.AwaitUntimed(context.Background())
	var ie *InterruptedError
	if !errors.As(err, &ie) {
		t.Fatalf("expected an *InterruptedError, got %v", err)
	}
}
