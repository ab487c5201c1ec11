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

// Package transport carries invocations to remote peers over HTTP and
// feeds their replies back into a registry.Registry, playing the role of
// the delivery thread that eventually calls Complete on a waiting future.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/opfabric/invoke"
	"github.com/opfabric/invoke/registry"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Dispatcher sends an encoded invocation to target and arranges for its
// eventual reply to complete completable, the registry entry standing in
// for the caller's future.
type Dispatcher interface {
	Send(ctx context.Context, target invoke.Address, invocationID string, payload any, completable registry.Completable) error
}

var _ Dispatcher = (*Client)(nil)

type wireRequest struct {
	InvocationID string `json:"invocationId"`
	Payload      any    `json:"payload"`
}

type wireReply struct {
	InvocationID string               `json:"invocationId"`
	Payload      jsoniter.RawMessage  `json:"payload,omitempty"`
	Error        string               `json:"error,omitempty"`
	Executing    bool                 `json:"executing,omitempty"`
}

// Client is the shipped Dispatcher, built on go-retryablehttp: the
// invocation body is marshaled with json-iterator/go and POSTed to the
// peer's operations endpoint, with retryablehttp's own backoff policy
// governing resend attempts at the transport layer — independent of the
// Await Engine's own long-poll escalation, which governs how long a
// caller waits, not how the transport resends.
type Client struct {
	http     *retryablehttp.Client
	registry *registry.Registry
	logger   invoke.Logger
}

// NewClient builds a Client that registers every dispatched invocation
// with reg, and completes it from reg when a reply arrives.
func NewClient(reg *registry.Registry, logger invoke.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.Logger = leveledLogger{l: logger}
	return &Client{http: hc, registry: reg, logger: logger}
}

// Send registers invocationID with the client's registry, then POSTs
// payload to target's operations endpoint and completes the registered
// entry from the response.
func (c *Client) Send(ctx context.Context, target invoke.Address, invocationID string, payload any, completable registry.Completable) error {
	c.registry.Register(invocationID, completable)

	body, err := jsonAPI.Marshal(wireRequest{InvocationID: invocationID, Payload: payload})
	if err != nil {
		c.registry.Deregister(invocationID)
		return fmt.Errorf("transport: encode invocation %s: %w", invocationID, err)
	}

	url := fmt.Sprintf("http://%s/operations", target.String())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.registry.Deregister(invocationID)
		return fmt.Errorf("transport: build request for invocation %s: %w", invocationID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The entry stays registered: a late reply, or the liveness
		// oracle, may still resolve it. The caller's Await Engine is
		// responsible for eventually timing out.
		return fmt.Errorf("transport: send invocation %s to %s: %w", invocationID, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("transport: read reply for invocation %s: %w", invocationID, err)
	}

	var reply wireReply
	if err := jsonAPI.Unmarshal(raw, &reply); err != nil {
		return fmt.Errorf("transport: decode reply for invocation %s: %w", invocationID, err)
	}

	c.deliver(reply)
	return nil
}

func (c *Client) deliver(reply wireReply) {
	entry, ok := c.registry.Lookup(reply.InvocationID)
	if !ok {
		c.logger.Trace("reply for unknown or already-resolved invocation", "invocation", reply.InvocationID)
		return
	}
	if reply.Error != "" {
		entry.CompleteErr(fmt.Errorf("%s", reply.Error))
		return
	}
	entry.CompleteRaw(reply.Payload)
}

// ProbeExecuting asks target whether invocationID is still executing,
// used by the liveness package's Oracle implementation.
func (c *Client) ProbeExecuting(ctx context.Context, target invoke.Address, invocationID string) (bool, error) {
	url := fmt.Sprintf("http://%s/operations/%s/executing", target.String(), invocationID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var reply wireReply
	if err := jsoniter.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return false, err
	}
	return reply.Executing, nil
}

// leveledLogger adapts invoke.Logger (hclog.Logger) to retryablehttp's
// LeveledLogger interface.
type leveledLogger struct {
	l invoke.Logger
}

func (a leveledLogger) Error(msg string, kv ...interface{}) { a.l.Error(msg, kv...) }
func (a leveledLogger) Info(msg string, kv ...interface{})  { a.l.Info(msg, kv...) }
func (a leveledLogger) Debug(msg string, kv ...interface{}) { a.l.Debug(msg, kv...) }
func (a leveledLogger) Warn(msg string, kv ...interface{})  { a.l.Warn(msg, kv...) }
