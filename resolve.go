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

// resolve maps a raw slot cell to the user-visible Result. An awaiter calls
// it on its own goroutine, so stack stitching for failure carriers
// captures the awaiter's frames. For continuations it is called once, on
// the completing goroutine (or on the attaching goroutine when Attach
// finds the Future already resolved), and that Result is handed to every
// continuation.
func (f *Future[T]) resolve(cell *slotCell[T]) Result[T] {
	switch cell.kind {
	case sentinelNullReply:
		return Empty[T]()
	case sentinelDeadlineExceeded, sentinelInterrupted:
		return Err[T](cell.err)
	}

	if cell.rawPending != nil {
		return f.resolveRaw(cell.rawPending)
	}

	if cell.isFailure {
		return Err[T](newExecutionError(f.invocation.ID(), cell.err))
	}

	return Val(cell.val)
}

// resolveRaw decodes a still-serialized payload through the Future's
// Codec, only meaningful when the Future was constructed with
// Deserialize: true. A decoded nil/zero maps to success-with-absent, same
// as NULL_REPLY — callers must not rely on "absent implies no reply".
func (f *Future[T]) resolveRaw(raw []byte) Result[T] {
	if !f.deserialize || f.codec == nil {
		f.logger.Error("received a raw response but this future is not in deserialize mode",
			"invocation", f.invocation.ID())
		return Err[T](ErrRawResponseNotDecoded)
	}
	val, err := f.codec.Decode(raw)
	if err != nil {
		return Err[T](newExecutionError(f.invocation.ID(), err))
	}
	return Val(val)
}
