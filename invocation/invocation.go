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

// Package invocation is the concrete collaborator a caller hands to
// invoke.New: a correlation identity, a call timeout, and the addresses
// needed for the Await Engine's migration check.
package invocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/opfabric/invoke"
)

// Invocation implements invoke.InvocationHandle.
type Invocation struct {
	id            string
	callTimeoutMS int64
	target        invoke.Address
	local         invoke.Address
	remote        bool
	logger        invoke.Logger
}

// New assigns a fresh correlation ID and builds an Invocation bound to
// target, dispatched from local. callTimeout <= 0 means no call timeout
// of its own, which disables long-poll escalation for this invocation.
func New(target, local invoke.Address, callTimeout time.Duration, logger invoke.Logger) *Invocation {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	id := uuid.NewString()
	return &Invocation{
		id:            id,
		callTimeoutMS: callTimeout.Milliseconds(),
		target:        target,
		local:         local,
		remote:        !target.Equal(local),
		logger:        logger.With("invocation", id, "target", target.String()),
	}
}

func (i *Invocation) ID() string { return i.id }

func (i *Invocation) CallTimeoutMS() int64 { return i.callTimeoutMS }

func (i *Invocation) TargetAddress() invoke.Address { return i.target }

func (i *Invocation) LocalAddress() invoke.Address { return i.local }

func (i *Invocation) IsRemote() bool { return i.remote }

func (i *Invocation) Logger() invoke.Logger { return i.logger }

func (i *Invocation) NewTimeoutError(elapsedMS int64) error {
	return invoke.NewSynthesizedTimeoutError(i.id, elapsedMS)
}
