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

// Package liveness answers whether a remote peer is still executing a
// given invocation, feeding the Await Engine's long-poll escalation.
package liveness

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/opfabric/invoke"
)

// Oracle is invoke.LivenessOracle, re-exported here so callers that only
// import this package don't also need to import invoke for the type.
type Oracle = invoke.LivenessOracle

// prober is the minimal transport surface a Prober needs: a single
// network probe. transport.Client satisfies this, and tests substitute a
// fake to control exactly when a probe fails versus succeeds.
type prober interface {
	ProbeExecuting(ctx context.Context, target invoke.Address, invocationID string) (bool, error)
}

// Prober is the shipped Oracle: it asks the invocation's target over a
// transport client whether the operation is still running, wrapping that
// single probe in a short constant-interval retry so one transient connection
// blip doesn't, by itself, manufacture a false "not executing" that would
// directly cause a spurious timeout upstream.
type Prober struct {
	client     prober
	maxRetries uint64
	interval   time.Duration
	logger     invoke.Logger
}

// NewProber builds a Prober over client. A nil logger falls back to a
// no-op one.
func NewProber(client prober, logger invoke.Logger) *Prober {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Prober{
		client:     client,
		maxRetries: 1,
		interval:   150 * time.Millisecond,
		logger:     logger,
	}
}

// IsExecuting implements invoke.LivenessOracle. A probe that still errs
// after retries is treated as "not executing": fail-fast, the same way
// the reference implementation treats a probe failure.
func (p *Prober) IsExecuting(ctx context.Context, inv invoke.InvocationHandle) bool {
	var executing bool
	op := func() error {
		ok, err := p.client.ProbeExecuting(ctx, inv.TargetAddress(), inv.ID())
		if err != nil {
			return err
		}
		executing = ok
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(p.interval), p.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		p.logger.Warn("liveness probe failed after retry, treating as not executing",
			"invocation", inv.ID(), "error", err)
		return false
	}
	return executing
}
