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

package invocation

import jsoniter "github.com/json-iterator/go"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONCodec implements invoke.Codec[T] over a still-serialized JSON reply,
// for Futures constructed with Deserialize: true.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Decode(raw []byte) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	err := jsonAPI.Unmarshal(raw, &v)
	return v, err
}
