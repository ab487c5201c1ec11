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

import "time"

// Clock is the monotonic-enough millisecond source consumed by the Await
// Engine for timeout accounting. It exists, instead of calling time.Now
// directly, so tests can swap in a deterministic clock without the
// flakiness of wall-clock sleeps.
type Clock interface {
	NowMS() int64
}

type realClock struct{}

func (realClock) NowMS() int64 { return time.Now().UnixMilli() }

// defaultClock is shared by every Future that isn't given one explicitly.
var defaultClock Clock = realClock{}
