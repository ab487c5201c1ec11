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

// Package invoke implements the rendezvous between a goroutine dispatching
// an operation to a remote peer and whichever goroutine eventually observes
// its reply.
//
// A Future[T] is created empty, handed to both the dispatching caller and
// the delivery path, and resolves exactly once: a delivery goroutine calls
// one of Complete, CompleteEmpty, CompleteErr, or CompleteRaw, while any
// number of callers independently call AwaitUntimed, AwaitTimeout, or Join,
// or attach a Callback via Attach. Completion is first-writer-wins: the
// value offered by the call that actually takes effect is the one every
// waiter and every attached continuation observes.
//
// The Await Engine additionally escalates long waits against a
// LivenessOracle, so a caller parked well past the invocation's own call
// timeout eventually gets a synthesized timeout instead of waiting forever
// on a peer that silently died. See the sibling invocation, registry,
// liveness, and transport packages for the collaborators a production
// deployment wires in.
package invoke
