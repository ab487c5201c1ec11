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
	"strconv"
)

// Address is a cluster endpoint identity, used instead of a bare string so
// the Await Engine's migration check (target == local address) is a typed
// equality, not accidental string comparison.
type Address struct {
	Host string
	Port int
}

func (a Address) String() string {
	if a.Port == 0 {
		return a.Host
	}
	return a.Host + ":" + strconv.Itoa(a.Port)
}

func (a Address) Equal(other Address) bool {
	return a.Host == other.Host && a.Port == other.Port
}

// InvocationHandle is the opaque collaborator every Future is bound to.
// It is an interface, not a concrete type, because this package must not
// import the concrete invocation package — that package imports this one
// to implement the handle, not the other way around.
type InvocationHandle interface {
	// ID is the correlation identity used for logging and in error
	// messages; it need not be unique outside one registry's scope.
	ID() string

	// CallTimeoutMS is the per-invocation call timeout used to derive the
	// max-single-poll bound. A value <= 0 means unbounded.
	CallTimeoutMS() int64

	// TargetAddress is the peer this invocation was sent to.
	TargetAddress() Address

	// LocalAddress is this process's own address, used for the migration
	// check in the Await Engine's main loop.
	LocalAddress() Address

	// IsRemote reports whether the invocation targets a remote peer at
	// all (as opposed to being served locally).
	IsRemote() bool

	// Logger is the per-invocation logger, already annotated with the
	// invocation's identity.
	Logger() Logger

	// NewTimeoutError builds the error value to synthesize as a
	// completion when long-poll escalation concludes the remote is no
	// longer executing this invocation.
	NewTimeoutError(elapsedMS int64) error
}

// LivenessOracle answers whether a remote peer is still executing a given
// invocation. The default production implementation is liveness.Prober,
// in the sibling liveness package.
type LivenessOracle interface {
	IsExecuting(ctx context.Context, invocation InvocationHandle) bool
}

// Deregisterer is the minimal view of an invocation registry the
// Completion Gate needs. The default production implementation is
// registry.Registry, in the sibling registry package.
type Deregisterer interface {
	Deregister(invocationID string)
}

// Codec decodes a still-serialized reply payload into a value of type T.
// The default production implementation is invocation.JSONCodec, in the
// sibling invocation package.
type Codec[T any] interface {
	Decode(raw []byte) (T, error)
}
