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

package registry

import (
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
)

type fakeCompletable struct{}

func (fakeCompletable) CompleteRaw(raw []byte) bool { return true }
func (fakeCompletable) CompleteErr(err error) bool   { return true }

func TestRegisterLookupDeregister(t *testing.T) {
	r := New(hclog.NewNullLogger())
	c := fakeCompletable{}
	r.Register("inv-1", c)

	got, ok := r.Lookup("inv-1")
	if !ok || got != c {
		t.Fatalf("expected to find the registered entry, got %v, %v", got, ok)
	}

	r.Deregister("inv-1")
	if _, ok := r.Lookup("inv-1"); ok {
		t.Fatalf("expected inv-1 to be gone after deregister")
	}
}

func TestDeregisterIsIdempotent(t *testing.T) {
	r := New(hclog.NewNullLogger())
	r.Register("inv-2", fakeCompletable{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Deregister("inv-2")
		}()
	}
	wg.Wait()

	// a third call, on an ID that's now long gone, must still be a no-op.
	r.Deregister("inv-2")

	if _, ok := r.Lookup("inv-2"); ok {
		t.Fatalf("expected inv-2 to be gone")
	}
}

func TestDeregisterUnknownID(t *testing.T) {
	r := New(hclog.NewNullLogger())
	r.Deregister("never-registered")
}
