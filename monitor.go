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
	"sync"
	"sync/atomic"
)

// waiterMonitor is a mutex plus a single condition variable shared by
// every attach/complete critical section on one Future. It is not a
// one-shot done channel: besides the terminal notification, parkFor's
// timer and context watcher also wake parked waiters through it, so a
// waiter can wake, re-check the slot, and park again any number of times.
// A WAIT_AGAIN completion does not notify; waiters see it on their next
// wake-up.
//
// waiterCount and interrupted are plain atomics: they do not require the
// monitor, and are read and written outside it.
type waiterMonitor struct {
	mu   sync.Mutex
	cond sync.Cond

	waiterCount atomic.Int32
	interrupted atomic.Bool
}

func newWaiterMonitor() *waiterMonitor {
	m := &waiterMonitor{}
	m.cond.L = &m.mu
	return m
}

// enter acquires the monitor for an attach/complete critical section.
func (m *waiterMonitor) enter() { m.mu.Lock() }

// exit releases the monitor.
func (m *waiterMonitor) exit() { m.mu.Unlock() }

// notifyAll wakes every goroutine parked on the condition.
func (m *waiterMonitor) notifyAll() { m.cond.Broadcast() }

// wait parks the calling goroutine on the condition. The caller must hold
// the monitor (via enter); wait releases it for the duration of the park
// and reacquires it before returning.
func (m *waiterMonitor) wait() { m.cond.Wait() }

// regWait increments the count of goroutines currently parked in Await.
func (m *waiterMonitor) regWait() { m.waiterCount.Add(1) }

// unregWait decrements the same count, including on exit via interrupt or
// timeout.
func (m *waiterMonitor) unregWait() { m.waiterCount.Add(-1) }

// WaiterCount returns the number of goroutines currently parked in Await
// on this Future.
func (m *waiterMonitor) WaiterCount() int {
	return int(m.waiterCount.Load())
}

// markInterrupted records that some awaiting goroutine observed a
// cancellation signal while parked.
func (m *waiterMonitor) markInterrupted() { m.interrupted.Store(true) }

func (m *waiterMonitor) wasInterrupted() bool { return m.interrupted.Load() }
