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

import "github.com/hashicorp/go-hclog"

// Logger is the logging surface used throughout this module: redundant
// completions at trace, long-poll timeouts and executor rejections at
// warn, continuation panics at error. It is exactly hclog.Logger, so any
// host process already using hclog can hand this module its own named
// sub-logger with Logger.Named("invoke").
type Logger = hclog.Logger

// defaultLogger is used wherever a Future or collaborator is constructed
// without an explicit logger.
func defaultLogger() Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "invoke",
		Level: hclog.Warn,
	})
}
