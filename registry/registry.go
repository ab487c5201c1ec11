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

// Package registry tracks in-flight invocations by correlation ID, so a
// delivery path that only has a reply's ID on the wire can find the
// future waiting for it.
package registry

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Completable is the minimal view of an invoke.Future a registry entry
// needs in order to deliver a reply. invoke.Future[T] satisfies this for
// any T, since neither method's signature mentions the type parameter —
// that's what lets one Registry hold futures of heterogeneous result
// types behind a single map.
type Completable interface {
	CompleteRaw(raw []byte) bool
	CompleteErr(err error) bool
}

// Registry is a sync.Map-backed table of invocation ID to Completable.
// Register is called once per invocation, before the first send attempt;
// Deregister is idempotent, and safe to call concurrently, or on an ID
// that was never registered, or twice for the same ID.
type Registry struct {
	entries sync.Map // map[string]Completable
	logger  hclog.Logger
}

// New returns an empty Registry. A nil logger falls back to a no-op one.
func New(logger hclog.Logger) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Registry{logger: logger}
}

// Register adds c under id, ready to receive a reply or failure.
func (r *Registry) Register(id string, c Completable) {
	r.entries.Store(id, c)
	r.logger.Trace("registered invocation", "invocation", id)
}

// Deregister removes id from the table. Safe to call more than once.
func (r *Registry) Deregister(id string) {
	if _, loaded := r.entries.LoadAndDelete(id); loaded {
		r.logger.Trace("deregistered invocation", "invocation", id)
	}
}

// Lookup finds the Completable registered under id, if any.
func (r *Registry) Lookup(id string) (Completable, bool) {
	v, ok := r.entries.Load(id)
	if !ok {
		return nil, false
	}
	return v.(Completable), true
}
