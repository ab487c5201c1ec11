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

package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/opfabric/invoke"
	"github.com/opfabric/invoke/registry"
)

type fakeCompletable struct {
	raw []byte
	err error
	ok  chan struct{}
}

func newFakeCompletable() *fakeCompletable {
	return &fakeCompletable{ok: make(chan struct{}, 1)}
}

func (f *fakeCompletable) CompleteRaw(raw []byte) bool {
	f.raw = raw
	f.ok <- struct{}{}
	return true
}

func (f *fakeCompletable) CompleteErr(err error) bool {
	f.err = err
	f.ok <- struct{}{}
	return true
}

func testAddress(t *testing.T, rawURL string) invoke.Address {
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("bad test URL: %v", err)
	}
	port, _ := strconv.Atoi(u.Port())
	return invoke.Address{Host: u.Hostname(), Port: port}
}

func TestSendDeliversPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"invocationId":"inv-1","payload":{"value":42}}`)
	}))
	defer srv.Close()

	reg := registry.New(hclog.NewNullLogger())
	client := NewClient(reg, hclog.NewNullLogger())

	completable := newFakeCompletable()
	target := testAddress(t, srv.URL)

	if err := client.Send(context.Background(), target, "inv-1", map[string]int{"value": 42}, completable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-completable.ok:
	default:
		t.Fatalf("expected the completable to be completed")
	}
	if !strings.Contains(string(completable.raw), "42") {
		t.Fatalf("expected the raw payload to carry the value, got %s", completable.raw)
	}
}

func TestSendDeliversServerSideError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"invocationId":"inv-2","error":"operation failed"}`)
	}))
	defer srv.Close()

	reg := registry.New(hclog.NewNullLogger())
	client := NewClient(reg, hclog.NewNullLogger())
	completable := newFakeCompletable()

	if err := client.Send(context.Background(), testAddress(t, srv.URL), "inv-2", nil, completable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completable.err == nil {
		t.Fatalf("expected the completable to be failed")
	}
}

func TestProbeExecutingReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"invocationId":"inv-3","executing":true}`)
	}))
	defer srv.Close()

	reg := registry.New(hclog.NewNullLogger())
	client := NewClient(reg, hclog.NewNullLogger())

	ok, err := client.ProbeExecuting(context.Background(), testAddress(t, srv.URL), "inv-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected executing=true")
	}
}
