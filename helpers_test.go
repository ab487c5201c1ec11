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

	"github.com/hashicorp/go-hclog"
)

// fakeInvocation is the InvocationHandle used across this package's tests.
type fakeInvocation struct {
	id            string
	callTimeoutMS int64
	target        Address
	local         Address
	remote        bool
}

func (f *fakeInvocation) ID() string                { return f.id }
func (f *fakeInvocation) CallTimeoutMS() int64       { return f.callTimeoutMS }
func (f *fakeInvocation) TargetAddress() Address     { return f.target }
func (f *fakeInvocation) LocalAddress() Address      { return f.local }
func (f *fakeInvocation) IsRemote() bool             { return f.remote }
func (f *fakeInvocation) Logger() Logger             { return hclog.NewNullLogger() }
func (f *fakeInvocation) NewTimeoutError(ms int64) error {
	return newSynthesizedTimeoutError(f.id, ms)
}

func newFakeInvocation(id string) *fakeInvocation {
	return &fakeInvocation{
		id:     id,
		target: Address{Host: "127.0.0.1", Port: 9701},
		local:  Address{Host: "127.0.0.1", Port: 9701},
		remote: false,
	}
}

// alwaysExecutingOracle reports every invocation as still running.
type alwaysExecutingOracle struct{}

func (alwaysExecutingOracle) IsExecuting(context.Context, InvocationHandle) bool { return true }

func quietLogger() Logger {
	return hclog.New(&hclog.LoggerOptions{Level: hclog.Off})
}
